// Package telegram renders localized keyboards as Telegram inline keyboards.
package telegram

import (
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/itoolpack/itoolpack/localization"
)

var urlPrefixes = []string{"http://", "https://", "tg://"}

// Inline builds an inline keyboard. Actions that look like links become URL
// buttons, every other action is sent back as callback data.
func Inline(rows [][]localization.Button, _ int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	teleRows := make([]tele.Row, 0, len(rows))
	for _, row := range rows {
		btns := make([]tele.Btn, 0, len(row))
		for _, button := range row {
			btns = append(btns, toBtn(markup, button))
		}
		teleRows = append(teleRows, markup.Row(btns...))
	}

	markup.Inline(teleRows...)
	return markup
}

// Render resolves key in lang and renders it with Inline.
func Render(r localization.KeyboardRenderer, key, lang string) (*tele.ReplyMarkup, error) {
	return localization.RenderKeyboard[*tele.ReplyMarkup](r, Inline, key, lang)
}

func toBtn(markup *tele.ReplyMarkup, button localization.Button) tele.Btn {
	if isURL(button.Action) {
		return markup.URL(button.Label, button.Action)
	}
	return tele.Btn{Text: button.Label, Data: button.Action}
}

func isURL(action string) bool {
	for _, prefix := range urlPrefixes {
		if strings.HasPrefix(action, prefix) {
			return true
		}
	}
	return false
}
