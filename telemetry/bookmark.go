package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFirstPass   BookmarkType = "first_pass"
	BookmarkRecord      BookmarkType = "record"
	BookmarkStagnation  BookmarkType = "stagnation"
	BookmarkCeilingRush BookmarkType = "ceiling_rush"
)

// Bookmark marks a notable generation.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Generation  int          `csv:"generation"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"gen", b.Generation,
		"description", b.Description,
	)
}

// BookmarkDetector watches generation stats for notable moments.
type BookmarkDetector struct {
	stagnationWindow int

	seenGeneration bool
	passed         bool
	best           float64
	sinceRecord    int // generations since best improved
}

// NewBookmarkDetector creates a detector that flags stagnation after
// stagnationWindow generations without a new best fitness.
func NewBookmarkDetector(stagnationWindow int) *BookmarkDetector {
	if stagnationWindow < 3 {
		stagnationWindow = 3
	}
	return &BookmarkDetector{stagnationWindow: stagnationWindow}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(s GenerationStats) []Bookmark {
	var bookmarks []Bookmark

	if !bd.passed && s.Score > 0 {
		bd.passed = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkFirstPass,
			Generation:  s.Generation,
			Description: fmt.Sprintf("First pipe passed after %d ticks", s.Ticks),
		})
	}

	switch {
	case !bd.seenGeneration:
		bd.best = s.FitnessMax
	case s.FitnessMax > bd.best:
		// Only large jumps are worth a bookmark
		if s.FitnessMax >= bd.best*1.25 && s.FitnessMax-bd.best >= 5 {
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkRecord,
				Generation:  s.Generation,
				Description: fmt.Sprintf("Best fitness %.1f, up from %.1f", s.FitnessMax, bd.best),
			})
		}
		bd.best = s.FitnessMax
		bd.sinceRecord = 0
	default:
		bd.sinceRecord++
		// Trigger once per stagnation spell
		if bd.sinceRecord == bd.stagnationWindow {
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkStagnation,
				Generation:  s.Generation,
				Description: fmt.Sprintf("No improvement on %.1f for %d generations", bd.best, bd.sinceRecord),
			})
		}
	}
	bd.seenGeneration = true

	if s.Population > 0 && s.DeathsCeiling*2 > s.Population {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkCeilingRush,
			Generation:  s.Generation,
			Description: fmt.Sprintf("%d of %d birds flew off the top", s.DeathsCeiling, s.Population),
		})
	}

	return bookmarks
}
