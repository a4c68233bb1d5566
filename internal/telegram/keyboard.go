package telegram

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"
	"github.com/set-night/giftshop/internal/config"
)

// InlineButton creates a single inline keyboard button.
func InlineButton(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// InlineKeyboard creates an inline keyboard from rows of buttons. Empty rows are dropped.
func InlineKeyboard(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	kept := make([][]models.InlineKeyboardButton, 0, len(rows))
	for _, r := range rows {
		if len(r) > 0 {
			kept = append(kept, r)
		}
	}
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: kept,
	}
}

// ButtonRow creates a row of inline buttons.
func ButtonRow(buttons ...models.InlineKeyboardButton) []models.InlineKeyboardButton {
	return buttons
}

// Grid lays buttons out perRow to a row.
func Grid(buttons []models.InlineKeyboardButton, perRow int) [][]models.InlineKeyboardButton {
	if perRow < 1 {
		perRow = 1
	}
	var rows [][]models.InlineKeyboardButton
	for len(buttons) > 0 {
		n := min(perRow, len(buttons))
		rows = append(rows, buttons[:n:n])
		buttons = buttons[n:]
	}
	return rows
}

// PaginationRow creates a pagination row with prev/next buttons.
func PaginationRow(currentPage, totalPages int, callbackPrefix string) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var row []models.InlineKeyboardButton

	if currentPage > 0 {
		row = append(row, InlineButton("⬅️", fmt.Sprintf("%s:%d", callbackPrefix, currentPage-1)))
	}

	row = append(row, InlineButton(
		fmt.Sprintf("%d/%d", currentPage+1, totalPages),
		"noop",
	))

	if currentPage < totalPages-1 {
		row = append(row, InlineButton("➡️", fmt.Sprintf("%s:%d", callbackPrefix, currentPage+1)))
	}

	return row
}

// CallbackData joins parts with ':' and fails if the result does not fit Telegram's limit.
func CallbackData(parts ...string) (string, error) {
	data := strings.Join(parts, ":")
	if len(data) > config.MaxCallbackDataLen {
		return "", fmt.Errorf("callback data %q is %d bytes, limit %d", data, len(data), config.MaxCallbackDataLen)
	}
	return data, nil
}

// ParseCallback splits callback data built by CallbackData after stripping prefix.
func ParseCallback(data, prefix string) []string {
	rest := strings.TrimPrefix(data, prefix)
	rest = strings.TrimPrefix(rest, ":")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, ":")
}
