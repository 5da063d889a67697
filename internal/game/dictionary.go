package game

import (
	"fmt"
	"sync"
)

// WordSource supplies accepted words for a category from an external store.
// A source error for one category must not affect the others.
type WordSource interface {
	WordsByCategory(category string) ([]string, error)
}

// Dictionary holds, per category, the normalized set of accepted words. It
// is constructed with bundled fallback lists and can be refreshed from a
// WordSource; a failed refresh keeps the previous set for that category.
// Safe for concurrent readers; Reload takes the write lock.
type Dictionary struct {
	mu     sync.RWMutex
	source WordSource
	words  map[string]map[string]struct{}
	loaded bool
}

func NewDictionary(source WordSource) *Dictionary {
	d := &Dictionary{
		source: source,
		words:  make(map[string]map[string]struct{}),
	}
	for category, list := range fallbackWordLists {
		d.words[normalizeKey(category)] = buildWordSet(list)
	}
	return d
}

func buildWordSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, word := range list {
		key := normalizeKey(word)
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}

func (d *Dictionary) HasExact(category, word string) bool {
	key := normalizeKey(word)
	if key == "" {
		return false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	set := d.words[normalizeKey(category)]
	if set == nil {
		return false
	}
	_, ok := set[key]
	return ok
}

// IsFuzzyMatch accepts a word when it is within edit distance of a known
// word: tolerance 1 up to six letters, 2 beyond that. Words of three letters
// or fewer only match exactly.
func (d *Dictionary) IsFuzzyMatch(category, word string) bool {
	key := normalizeKey(word)
	if key == "" {
		return false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	set := d.words[normalizeKey(category)]
	if set == nil {
		return false
	}
	if _, ok := set[key]; ok {
		return true
	}
	length := len([]rune(key))
	if length <= 3 {
		return false
	}
	tolerance := 2
	if length <= 6 {
		tolerance = 1
	}
	for candidate := range set {
		if editDistance(key, candidate) <= tolerance {
			return true
		}
	}
	return false
}

// Reload refreshes every category from the source. Categories whose fetch
// fails or comes back empty keep their current set. With force=false a
// completed reload is not repeated.
func (d *Dictionary) Reload(force bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded && !force {
		return nil
	}
	if d.source == nil {
		return nil
	}
	var firstErr error
	for category := range d.words {
		list, err := d.source.WordsByCategory(category)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("reload category %q: %w", category, err)
			}
			continue
		}
		set := buildWordSet(list)
		if len(set) == 0 {
			continue
		}
		d.words[category] = set
	}
	d.loaded = true
	return firstErr
}

// Categories lists the category keys the dictionary currently knows.
func (d *Dictionary) Categories() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	categories := make([]string, 0, len(d.words))
	for category := range d.words {
		categories = append(categories, category)
	}
	return categories
}

func (d *Dictionary) wordCount(category string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.words[normalizeKey(category)])
}

// editDistance is a two-row Levenshtein over runes.
func editDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
