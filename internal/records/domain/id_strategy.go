package domain

import (
	"fmt"
	"strconv"
	"strings"

	"upkeep-server/internal/infra/utils"
)

// IDStrategy allocates a record id that does not collide with existing ones.
type IDStrategy interface {
	NextID(existing []ID) (ID, error)
}

const _maxIDAttempts = 16

type UUIDStrategy struct{}

func (UUIDStrategy) NextID(existing []ID) (ID, error) {
	taken := idSet(existing)
	for range _maxIDAttempts {
		candidate := ID(utils.GenerateUUID())
		if _, ok := taken[candidate]; !ok {
			return candidate, nil
		}
	}
	return "", ErrIDExhausted
}

// PrefixedSequenceStrategy produces ids like WO-0007. The next number is one
// past the highest existing suffix, so deleting records never reissues an id
// still held by another record.
type PrefixedSequenceStrategy struct {
	Prefix string
	Width  int
}

func (s PrefixedSequenceStrategy) NextID(existing []ID) (ID, error) {
	taken := idSet(existing)
	next := 0
	for _, id := range existing {
		n, ok := s.parse(id)
		if ok && n > next {
			next = n
		}
	}

	for range _maxIDAttempts {
		next++
		candidate := s.format(next)
		if _, ok := taken[candidate]; !ok {
			return candidate, nil
		}
	}
	return "", ErrIDExhausted
}

func (s PrefixedSequenceStrategy) parse(id ID) (int, bool) {
	raw, ok := strings.CutPrefix(string(id), s.Prefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (s PrefixedSequenceStrategy) format(n int) ID {
	return ID(fmt.Sprintf("%s%0*d", s.Prefix, s.Width, n))
}

func idSet(ids []ID) map[ID]struct{} {
	set := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
