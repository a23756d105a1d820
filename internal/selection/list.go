package selection

import (
	"slices"

	barerrors "github.com/ytget/prodbar/internal/errors"
	"github.com/ytget/prodbar/internal/kvstore"
)

// readList loads one persisted list. Unknown and duplicate ids are dropped,
// an oversized list keeps its first max entries, and anything unusable
// yields a copy of defaults.
func readList[T ~string](s *Store, key string, max int, known func(T) bool, defaults []T) []T {
	var stored []T
	found, err := kvstore.LoadJSON(s.storage, key, &stored)
	if err != nil {
		s.logger.Warn("ignoring stored selection", "key", key, "error", err)
		return slices.Clone(defaults)
	}
	if !found {
		return slices.Clone(defaults)
	}

	cleaned := make([]T, 0, len(stored))
	for _, id := range stored {
		if !known(id) || slices.Contains(cleaned, id) {
			continue
		}
		cleaned = append(cleaned, id)
	}
	if len(cleaned) == 0 {
		return slices.Clone(defaults)
	}
	if len(cleaned) > max {
		s.logger.Info("truncating stored selection", "key", key, "stored", len(cleaned), "max", max)
		cleaned = cleaned[:max]
	}
	return cleaned
}

func add[T ~string](items []T, id T, max int, kind string, known func(T) bool) ([]T, error) {
	if !known(id) {
		return nil, barerrors.NotFound(kind, string(id))
	}
	if slices.Contains(items, id) {
		return nil, barerrors.AlreadySelected(kind, string(id))
	}
	if len(items) >= max {
		return nil, barerrors.LimitExceeded(kind, max)
	}
	return append(slices.Clone(items), id), nil
}

func remove[T ~string](items []T, id T, kind string) ([]T, error) {
	if len(items) <= 1 {
		return nil, barerrors.MinimumRequired(kind)
	}
	i := slices.Index(items, id)
	if i < 0 {
		return nil, barerrors.NotSelected(kind, string(id))
	}
	return slices.Delete(slices.Clone(items), i, i+1), nil
}

func validate[T ~string](ids []T, max int, kind string, known func(T) bool) ([]T, error) {
	if len(ids) == 0 {
		return nil, barerrors.MinimumRequired(kind)
	}
	if len(ids) > max {
		return nil, barerrors.LimitExceeded(kind, max)
	}

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if !known(id) {
			return nil, barerrors.NotFound(kind, string(id))
		}
		if slices.Contains(out, id) {
			return nil, barerrors.AlreadySelected(kind, string(id))
		}
		out = append(out, id)
	}
	return out, nil
}
