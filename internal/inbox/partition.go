package inbox

import "github.com/johndosdos/escola/internal/model"

// Views are the three tabs of a message list.
type Views[T any] struct {
	All        []T
	General    []T
	Individual []T
}

// Tab returns the view named by tab, falling back to All.
func (v Views[T]) Tab(tab string) []T {
	switch tab {
	case TabGeneral:
		return v.General
	case TabIndividual:
		return v.Individual
	default:
		return v.All
	}
}

// Partition splits msgs by type. Both sub-views keep the source order.
func Partition(msgs []model.Message) Views[model.Message] {
	return partition(msgs, func(m model.Message) model.MessageType { return m.Type })
}

// PartitionSent splits the school history by type.
func PartitionSent(msgs []model.SentMessage) Views[model.SentMessage] {
	return partition(msgs, func(m model.SentMessage) model.MessageType { return m.Type })
}

func partition[T any](msgs []T, typeOf func(T) model.MessageType) Views[T] {
	v := Views[T]{
		All:        msgs,
		General:    []T{},
		Individual: []T{},
	}
	for _, m := range msgs {
		switch typeOf(m) {
		case model.TypeGeneral:
			v.General = append(v.General, m)
		case model.TypeIndividual:
			v.Individual = append(v.Individual, m)
		}
	}
	return v
}

// NormalizeTab maps unknown tab names to TabAll.
func NormalizeTab(tab string) string {
	switch tab {
	case TabGeneral, TabIndividual:
		return tab
	default:
		return TabAll
	}
}
