package catalog

import "github.com/ytget/eizo/internal/model"

// Sample returns the built-in feed used when no catalog file is configured.
// Caption times are local to each clip.
func Sample() StaticSource {
	return StaticSource{
		{
			SourceID: "6mWt-7HAYCc",
			Start:    0,
			End:      15,
			Title:    "Me at the zoo",
			Channel:  "jawed",
			Captions: []model.Caption{
				{Start: 0, End: 3, Original: "こんにちは、動物園です", Translated: "Hello, this is the zoo"},
				{Start: 3, End: 6, Original: "象の前にいます", Translated: "We're in front of the elephants"},
				{Start: 6, End: 9, Original: "とても面白いですね", Translated: "This is very interesting"},
				{Start: 9, End: 12, Original: "長い鼻を持っています", Translated: "They have really long trunks"},
				{Start: 12, End: 15, Original: "それだけです", Translated: "That's pretty much it"},
			},
		},
		{
			SourceID: "OPf0YbXqDm0",
			Start:    10,
			End:      25,
			Title:    "Mark Rober",
			Channel:  "Mark Rober",
			Captions: []model.Caption{
				{Start: 0, End: 3, Original: "科学は素晴らしい", Translated: "Science is amazing"},
				{Start: 3, End: 6, Original: "実験を始めましょう", Translated: "Let's start the experiment"},
				{Start: 6, End: 9, Original: "これを見てください", Translated: "Look at this"},
				{Start: 9, End: 12, Original: "信じられない結果です", Translated: "The results are incredible"},
				{Start: 12, End: 15, Original: "試してみてください", Translated: "Try this yourself"},
			},
		},
		{
			SourceID: "aqz-KE-bpKQ",
			Start:    5,
			End:      20,
			Title:    "Big Buck Bunny",
			Channel:  "Blender Foundation",
			Captions: []model.Caption{
				{Start: 0, End: 3, Original: "美しい朝です", Translated: "It's a beautiful morning"},
				{Start: 3, End: 6, Original: "ウサギが目を覚ました", Translated: "The bunny wakes up"},
				{Start: 6, End: 9, Original: "森の中を歩いています", Translated: "Walking through the forest"},
				{Start: 9, End: 12, Original: "何かが起こる", Translated: "Something is about to happen"},
				{Start: 12, End: 15, Original: "冒険が始まる", Translated: "The adventure begins"},
			},
		},
		{
			SourceID: "9bZkp7q19f0",
			Start:    30,
			End:      50,
			Title:    "Gangnam Style",
			Channel:  "officialpsy",
			Captions: []model.Caption{
				{Start: 0, End: 3, Original: "江南スタイル", Translated: "Gangnam Style"},
				{Start: 3, End: 6, Original: "踊りましょう", Translated: "Let's dance"},
				{Start: 6, End: 9, Original: "リズムに乗って", Translated: "Feel the rhythm"},
				{Start: 9, End: 12, Original: "オッパ江南スタイル", Translated: "Oppa Gangnam Style"},
				{Start: 12, End: 15, Original: "みんな一緒に", Translated: "Everyone together"},
				{Start: 15, End: 20, Original: "楽しもう", Translated: "Let's have fun"},
			},
		},
	}
}
