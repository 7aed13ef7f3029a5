package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/LUANPELO/buscador-buses-colombia/internal/models"
)

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "Hello World"},
		{"Rapido_Ochoa", "Rapido\\_Ochoa"},
		{"Price: $100.50", "Price: $100\\.50"},
		{"[link](url)", "\\[link\\]\\(url\\)"},
		{"06:00:00 - late!", "06:00:00 \\- late\\!"},
		{"", ""},
		{"_*[]()~`>#+-=|{}.!", "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := escapeMarkdownV2(tt.input)
			if result != tt.expected {
				t.Errorf("escapeMarkdownV2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatMessage(t *testing.T) {
	alerts := []models.Alert{
		{
			Kind:           models.KindSoldOut,
			Level:          models.LevelCritical,
			Origin:         "medellin",
			Destination:    "monteria",
			Date:           "2025-12-24",
			Operator:       "Rapido Ochoa",
			DepartureTime:  "06:00:00",
			SeatsAvailable: 0,
			SeatsTotal:     40,
			CreatedAt:      time.Now(),
		},
		{
			Kind:           models.KindWarning,
			Level:          models.LevelMedium,
			Origin:         "medellin",
			Destination:    "monteria",
			Date:           "2025-12-24",
			Operator:       "Expreso Brasilia",
			DepartureTime:  "18:30:00",
			SeatsAvailable: 8,
			SeatsTotal:     40,
			Price:          95000,
			CreatedAt:      time.Now(),
		},
	}

	msg := formatMessage(alerts)

	for _, want := range []string{
		"AGOTADO",
		"ADVERTENCIA",
		"Rapido Ochoa",
		"Expreso Brasilia",
		"Quedan 0 de 40 asientos",
		"Quedan 8 de 40 asientos",
		"95000 COP",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "2025-12-24") {
		t.Errorf("date must be escaped for MarkdownV2:\n%s", msg)
	}
	if !strings.Contains(msg, "2025\\-12\\-24") {
		t.Errorf("escaped date missing:\n%s", msg)
	}
}

func TestNewNotifier_InvalidChatID(t *testing.T) {
	if _, err := NewNotifier("", "not-a-number", 3, time.Second); err == nil {
		t.Error("expected error for invalid chat ID, got nil")
	}
}
