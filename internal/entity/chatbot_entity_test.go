package entity

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestChatbotStatusAt(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		now   time.Time
		want  ChatbotStatus
	}{
		{
			name:  "before start is pending",
			start: date(2026, time.June, 10),
			end:   date(2026, time.June, 12),
			now:   date(2026, time.June, 9),
			want:  ChatbotStatusPending,
		},
		{
			name:  "on start date is active",
			start: date(2026, time.June, 10),
			end:   date(2026, time.June, 12),
			now:   time.Date(2026, time.June, 10, 8, 30, 0, 0, time.UTC),
			want:  ChatbotStatusActive,
		},
		{
			name:  "on end date is still active",
			start: date(2026, time.June, 10),
			end:   date(2026, time.June, 12),
			now:   time.Date(2026, time.June, 12, 23, 59, 0, 0, time.UTC),
			want:  ChatbotStatusActive,
		},
		{
			name:  "day after end date is expired",
			start: date(2026, time.June, 10),
			end:   date(2026, time.June, 12),
			now:   date(2026, time.June, 13),
			want:  ChatbotStatusExpired,
		},
		{
			name:  "open-ended event never expires",
			start: date(2026, time.June, 10),
			end:   InfiniteEndDate(),
			now:   date(2030, time.January, 1),
			want:  ChatbotStatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Chatbot{StartDate: tt.start, EndDate: tt.end}
			if got := c.StatusAt(tt.now); got != tt.want {
				t.Errorf("StatusAt = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsInfiniteEndDate(t *testing.T) {
	open := Chatbot{EndDate: InfiniteEndDate()}
	if !open.IsInfiniteEndDate() {
		t.Error("sentinel end date should report infinite")
	}

	bounded := Chatbot{EndDate: date(2026, time.June, 12)}
	if bounded.IsInfiniteEndDate() {
		t.Error("regular end date should not report infinite")
	}
}
