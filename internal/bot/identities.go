package bot

import (
	"fmt"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"
)

const userIDPrefix = "bot:"

var displayNames = [4]string{"Maple", "Juniper", "Hazel", "Rowan"}

// Identity returns the deterministic bot player for a seat.
func Identity(seat int) domain.Player {
	return domain.Player{
		UserID:      fmt.Sprintf("%s%d", userIDPrefix, seat),
		DisplayName: displayNames[seat%len(displayNames)],
		IsBot:       true,
	}
}

// IsBot reports whether the user id belongs to a bot seat.
func IsBot(userID string) bool {
	return len(userID) > len(userIDPrefix) && userID[:len(userIDPrefix)] == userIDPrefix
}
