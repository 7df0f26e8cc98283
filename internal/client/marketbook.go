package client

import (
	"context"
	"strings"

	"nflprops/analyzer/internal/models"
)

// MarketBook indexes fetched event odds into the best available line per
// player prop. Best means the highest American price for the bettor; ties
// keep the first book seen.
type MarketBook struct {
	lines map[string]*models.BestLines
}

// NewMarketBook builds an index from event odds payloads.
func NewMarketBook(events []EventOdds) *MarketBook {
	book := &MarketBook{lines: make(map[string]*models.BestLines)}
	for i := range events {
		book.add(&events[i])
	}
	return book
}

func lineKey(player, propType string) string {
	return strings.ToLower(strings.TrimSpace(player)) + "|" + strings.ToLower(propType)
}

func (b *MarketBook) add(event *EventOdds) {
	for _, bookmaker := range event.Bookmakers {
		for _, market := range bookmaker.Markets {
			for _, outcome := range market.Outcomes {
				if outcome.Description == "" || outcome.Price == 0 {
					continue
				}

				key := lineKey(outcome.Description, market.Key)
				entry, ok := b.lines[key]
				if !ok {
					entry = &models.BestLines{
						Player:   outcome.Description,
						PropType: market.Key,
					}
					b.lines[key] = entry
				}

				line := models.Line{
					Point:     outcome.Point,
					Price:     outcome.Price,
					Bookmaker: bookmaker.Key,
				}

				switch outcome.Name {
				case "Over":
					if entry.Over.Price == 0 || outcome.Price > entry.Over.Price {
						entry.Over = line
					}
				case "Under":
					if entry.Under.Price == 0 || outcome.Price > entry.Under.Price {
						entry.Under = line
					}
				}
			}
		}
	}
}

// BestLines returns the indexed best over/under lines for a player prop.
// Nil when no market is posted. Satisfies the selector's odds provider.
func (b *MarketBook) BestLines(_ context.Context, player, propType string) (*models.BestLines, error) {
	entry, ok := b.lines[lineKey(player, propType)]
	if !ok {
		return nil, nil
	}
	return entry, nil
}

// Players lists every player with at least one indexed market.
func (b *MarketBook) Players() []string {
	seen := make(map[string]bool)
	var players []string
	for _, entry := range b.lines {
		if !seen[entry.Player] {
			seen[entry.Player] = true
			players = append(players, entry.Player)
		}
	}
	return players
}

// Props lists the indexed prop types for one player.
func (b *MarketBook) Props(player string) []string {
	var props []string
	prefix := strings.ToLower(strings.TrimSpace(player)) + "|"
	for key, entry := range b.lines {
		if strings.HasPrefix(key, prefix) {
			props = append(props, entry.PropType)
		}
	}
	return props
}
