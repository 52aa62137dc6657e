package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration (info)
		"Starting run %s":                          "実行 %s を開始します",
		"RFS node ready: %s mode, %d output frames": "RFS ノード準備完了: %s モード, 出力 %d フレーム",
		"Output saved to %s":                       "出力を %s に保存しました",
		"Run completed":                            "実行が完了しました",
		"Interrupted, shutting down...":            "中断されました。シャットダウン中...",

		// Source stage
		"Opened clip %s: %s, %d frames": "クリップ %s を開きました: %s, %d フレーム",

		// RFS
		"Built RFS node: %s mode, %d listed frames, %d output frames": "RFS ノードを構築しました: %s モード, 指定 %d フレーム, 出力 %d フレーム",
		"Listed frame %d is beyond the output length %d":              "指定フレーム %d は出力長 %d を超えています",

		// Render stage
		"Pulling %d frames with %d workers": "%d フレームを %d ワーカーで取得中",
		"Pull of frame %d failed: %s":       "フレーム %d の取得に失敗しました: %s",
		"Pulled %d frames, %d failed":       "%d フレームを取得しました (失敗 %d)",

		// Timeline stage
		"Drawing timeline: %d cells, %dx%d": "タイムラインを描画中: %d セル, %dx%d",

		// Warnings
		"Failed to save debug output: %s": "デバッグ出力の保存に失敗しました: %s",
		"Failed to encode pulls: %s":      "取得結果のエンコードに失敗しました: %s",

		// Errors
		"Failed to open clips: %s":     "クリップを開けませんでした: %s",
		"Failed to build RFS node: %s": "RFS ノードの構築に失敗しました: %s",
		"Failed to pull frames: %s":    "フレームの取得に失敗しました: %s",
		"Failed to draw timeline: %s":  "タイムラインの描画に失敗しました: %s",
		"Failed to write output: %s":   "出力の書き込みに失敗しました: %s",
	})
}
