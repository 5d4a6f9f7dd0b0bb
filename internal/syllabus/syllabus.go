// Package syllabus models the read-only Subject > Unit > SubTopic > Item
// tree and tracks item completion.
package syllabus

// Item is a leaf the user marks complete.
type Item struct {
	ID                  string `json:"item_id" validate:"required"`
	Name                string `json:"item_name" validate:"required"`
	SuggestedFlashcards int    `json:"suggested_flashcard_qty" validate:"gte=0"`
	Completed           bool   `json:"isCompleted"`
}

// SubTopic groups items.
type SubTopic struct {
	Name  string `json:"sub_topic_name" validate:"required"`
	Items []Item `json:"tracking_items" validate:"dive"`
}

// Unit groups sub-topics.
type Unit struct {
	Name      string     `json:"unit_name" validate:"required"`
	SubTopics []SubTopic `json:"sub_topics" validate:"dive"`
}

// Subject is the root of one syllabus tree.
type Subject struct {
	Name  string `json:"subject" validate:"required"`
	Paper string `json:"gs_paper"`
	Units []Unit `json:"units" validate:"dive"`
}

func (s SubTopic) TotalItems() int { return len(s.Items) }

func (s SubTopic) CompletedItems() int {
	n := 0
	for _, it := range s.Items {
		if it.Completed {
			n++
		}
	}
	return n
}

func (s SubTopic) TotalFlashcards() int {
	n := 0
	for _, it := range s.Items {
		n += it.SuggestedFlashcards
	}
	return n
}

func (u Unit) TotalSubTopics() int { return len(u.SubTopics) }

func (u Unit) TotalItems() int {
	n := 0
	for _, st := range u.SubTopics {
		n += st.TotalItems()
	}
	return n
}

func (u Unit) CompletedItems() int {
	n := 0
	for _, st := range u.SubTopics {
		n += st.CompletedItems()
	}
	return n
}

func (u Unit) TotalFlashcards() int {
	n := 0
	for _, st := range u.SubTopics {
		n += st.TotalFlashcards()
	}
	return n
}

func (s Subject) TotalUnits() int { return len(s.Units) }

func (s Subject) TotalSubTopics() int {
	n := 0
	for _, u := range s.Units {
		n += u.TotalSubTopics()
	}
	return n
}

func (s Subject) TotalItems() int {
	n := 0
	for _, u := range s.Units {
		n += u.TotalItems()
	}
	return n
}

func (s Subject) CompletedItems() int {
	n := 0
	for _, u := range s.Units {
		n += u.CompletedItems()
	}
	return n
}

func (s Subject) TotalFlashcards() int {
	n := 0
	for _, u := range s.Units {
		n += u.TotalFlashcards()
	}
	return n
}

// Percent returns done/total as a whole percentage, 0 when total is 0.
func Percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return done * 100 / total
}
