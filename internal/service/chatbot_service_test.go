package service

import (
	"testing"
	"time"

	"eventchat-be/internal/dto"
	"eventchat-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestResolveUpdateDates(t *testing.T) {
	bounded := &entity.Chatbot{
		StartDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
	}

	t.Run("omitted dates keep stored values", func(t *testing.T) {
		start, end, err := resolveUpdateDates(bounded, dto.ChatbotUpdateForm{})

		assert.NoError(t, err)
		assert.Equal(t, bounded.StartDate, start)
		assert.Equal(t, bounded.EndDate, end)
	})

	t.Run("omitted end date survives a start date change", func(t *testing.T) {
		start, end, err := resolveUpdateDates(bounded, dto.ChatbotUpdateForm{
			StartDate: strPtr("2026-06-11"),
		})

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 6, 11, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, bounded.EndDate, end)
	})

	t.Run("empty end date clears the expiry", func(t *testing.T) {
		_, end, err := resolveUpdateDates(bounded, dto.ChatbotUpdateForm{
			EndDate: strPtr(""),
		})

		assert.NoError(t, err)
		assert.Equal(t, entity.InfiniteEndDateYear, end.Year())
	})

	t.Run("supplied end date replaces the stored one", func(t *testing.T) {
		_, end, err := resolveUpdateDates(bounded, dto.ChatbotUpdateForm{
			EndDate: strPtr("2026-07-01"),
		})

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("end before start rejected", func(t *testing.T) {
		_, _, err := resolveUpdateDates(bounded, dto.ChatbotUpdateForm{
			StartDate: strPtr("2026-06-20"),
		})

		assert.ErrorIs(t, err, ErrBadDateRange)
	})

	t.Run("new start against stored end is checked", func(t *testing.T) {
		infinite := &entity.Chatbot{
			StartDate: bounded.StartDate,
			EndDate:   entity.InfiniteEndDate(),
		}
		_, _, err := resolveUpdateDates(infinite, dto.ChatbotUpdateForm{
			StartDate: strPtr("2030-01-01"),
		})

		assert.NoError(t, err)
	})

	t.Run("malformed dates rejected", func(t *testing.T) {
		_, _, err := resolveUpdateDates(bounded, dto.ChatbotUpdateForm{
			StartDate: strPtr("10/06/2026"),
		})
		assert.Error(t, err)

		_, _, err = resolveUpdateDates(bounded, dto.ChatbotUpdateForm{
			EndDate: strPtr("not-a-date"),
		})
		assert.Error(t, err)
	})
}

func TestCheckUpdateText(t *testing.T) {
	t.Run("omitted fields pass", func(t *testing.T) {
		assert.NoError(t, checkUpdateText(dto.ChatbotUpdateForm{}))
	})

	t.Run("non-blank values pass", func(t *testing.T) {
		assert.NoError(t, checkUpdateText(dto.ChatbotUpdateForm{
			Name:         strPtr("Launch Party"),
			SystemPrompt: strPtr("Be helpful."),
		}))
	})

	t.Run("blanked fields rejected", func(t *testing.T) {
		err := checkUpdateText(dto.ChatbotUpdateForm{Name: strPtr("   ")})
		assert.ErrorContains(t, err, "name must not be empty")

		err = checkUpdateText(dto.ChatbotUpdateForm{SystemPrompt: strPtr(" ")})
		assert.ErrorContains(t, err, "system_prompt must not be empty")
	})
}
