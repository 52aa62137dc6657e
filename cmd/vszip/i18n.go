// Package main provides localization for the vszip CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Commands
		"Splice two clips frame by frame with the RFS filter": "RFS フィルタで 2 つのクリップをフレーム単位で結合",
		"Run an RFS script":                     "RFS スクリプトを実行",
		"Splice two MP4 files without a script": "スクリプトなしで 2 つの MP4 ファイルを結合",
		"List pixel format presets":             "ピクセルフォーマットのプリセットを一覧表示",

		// Flags
		"Frame list, e.g. 0,3,5-7":                        "フレームリスト (例: 0,3,5-7)",
		"Allow clips with different formats":              "フォーマットの異なるクリップを許可",
		"replace (listed frames from clipb) or keep (listed frames from clipa)": "replace (指定フレームを clipb から) または keep (指定フレームを clipa から)",
		"Number of pull workers (0 = number of CPUs)": "取得ワーカー数 (0 = CPU 数)",
		"Write a markdown run summary to this path":   "Markdown の実行サマリーをこのパスに書き出す",
		"Write a timeline PNG to this path":           "タイムライン PNG をこのパスに書き出す",
		"Write prometheus metrics to this path":       "Prometheus メトリクスをこのパスに書き出す",
		"Enable debug output":                         "デバッグ出力を有効化",
		"Directory for debug output":                  "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error)":        "ログレベル (debug, info, warn, error)",
		"Suppress all log output":                     "すべてのログ出力を抑制",

		// Errors
		"rfs takes exactly one script path": "rfs にはスクリプトのパスを 1 つだけ指定してください",
		"probe takes two MP4 paths":         "probe には MP4 のパスを 2 つ指定してください",
		"%d of %d pulls failed":             "%d / %d 件の取得に失敗しました",

		// Summary
		"RFS Run Summary": "RFS 実行サマリー",
		"Run ID":          "実行 ID",
		"Generated":       "生成日時",
		"Clips":           "クリップ",
		"Settings":        "設定",
		"Pulls":           "取得",
		"Failed Pulls":    "失敗した取得",
		"Generated by":    "生成元",
		"Clip":            "クリップ",
		"Origin":          "入力元",
		"Size":            "サイズ",
		"Format":          "フォーマット",
		"Frames":          "フレーム",
		"Frame":           "フレーム番号",
		"Error":           "エラー",
		"Item":            "項目",
		"Value":           "値",
		"Mode":            "モード",
		"Direction":       "方向",
		"Workers":         "ワーカー数",
		"Pulled":          "取得数",
		"From clip a":     "clip a から",
		"From clip b":     "clip b から",
		"Failed":          "失敗",
		"Data":            "データ量",
		"output":          "出力",
	})
}
