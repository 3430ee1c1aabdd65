package telegram

func JoinKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{
			{{Text: "🎶 加入游戏", CallbackData: "join"}},
		},
	}
}
