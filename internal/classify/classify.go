// Package classify derives display buckets from approved content items.
package classify

// Item is the view of a content record the classifier needs.
type Item interface {
	TopicName() string
	DSALink() string
	EmbedID() string
}

// Buckets flags the display partitions an item belongs to. DSA and Video may
// both be set; Study is set only when neither is.
type Buckets struct {
	Study bool `json:"study"`
	Video bool `json:"video"`
	DSA   bool `json:"dsa"`
}

// Classify assigns an item to its buckets.
func Classify(item Item) Buckets {
	b := Buckets{
		DSA:   item.DSALink() != "",
		Video: item.EmbedID() != "",
	}
	b.Study = !b.DSA && !b.Video
	return b
}

// Partition holds items split per bucket, each in input order.
type Partition[T Item] struct {
	Study []T `json:"study"`
	Video []T `json:"video"`
	DSA   []T `json:"dsa"`
}

// Split partitions items. The slices are never nil so they encode as [].
func Split[T Item](items []T) Partition[T] {
	p := Partition[T]{Study: []T{}, Video: []T{}, DSA: []T{}}
	for _, item := range items {
		b := Classify(item)
		if b.Study {
			p.Study = append(p.Study, item)
			continue
		}
		if b.DSA {
			p.DSA = append(p.DSA, item)
		}
		if b.Video {
			p.Video = append(p.Video, item)
		}
	}
	return p
}

// TopicGroup is one topic and its items in fetch order.
type TopicGroup[T Item] struct {
	Topic string `json:"topic"`
	Items []T    `json:"items"`
}

// GroupByTopic groups items by topic. Groups are ordered by the first
// appearance of their topic in items.
func GroupByTopic[T Item](items []T) []TopicGroup[T] {
	index := make(map[string]int)
	groups := []TopicGroup[T]{}
	for _, item := range items {
		topic := item.TopicName()
		i, ok := index[topic]
		if !ok {
			i = len(groups)
			index[topic] = i
			groups = append(groups, TopicGroup[T]{Topic: topic})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// TopicSummary counts a topic's items per bucket for the dashboard.
type TopicSummary struct {
	Topic string `json:"topic"`
	Total int    `json:"total"`
	Study int    `json:"study"`
	Video int    `json:"video"`
	DSA   int    `json:"dsa"`
}

// Summarize returns per-topic bucket counts, in GroupByTopic order.
func Summarize[T Item](items []T) []TopicSummary {
	groups := GroupByTopic(items)
	out := make([]TopicSummary, 0, len(groups))
	for _, g := range groups {
		s := TopicSummary{Topic: g.Topic, Total: len(g.Items)}
		for _, item := range g.Items {
			b := Classify(item)
			if b.Study {
				s.Study++
			}
			if b.Video {
				s.Video++
			}
			if b.DSA {
				s.DSA++
			}
		}
		out = append(out, s)
	}
	return out
}
