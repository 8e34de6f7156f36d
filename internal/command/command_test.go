package command

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func id(v int64) *int64 { return &v }

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want ParsedCommand
	}{
		{"", ParsedCommand{Action: ActionCreate}},
		{"please create a new note about groceries", ParsedCommand{Action: ActionCreate, Content: "please  a  about groceries"}},
		{"New Note: Buy eggs", ParsedCommand{Action: ActionCreate, Content: ": buy eggs"}},
		{"make note call the bank", ParsedCommand{Action: ActionCreate, Content: "call the bank"}},
		{"Buy Milk Tomorrow", ParsedCommand{Action: ActionCreate, Content: "Buy Milk Tomorrow"}},
		{"create and delete note 4", ParsedCommand{Action: ActionCreate, Content: "and delete note 4"}},
		{"update note 7 buy milk", ParsedCommand{Action: ActionUpdate, NoteID: id(7), Content: "note 7 buy milk"}},
		{"edit note 3 call mom", ParsedCommand{Action: ActionUpdate, NoteID: id(3), Content: "3 call mom"}},
		{"please edit note then update 3", ParsedCommand{Action: ActionUpdate, NoteID: id(3), Content: "then update 3"}},
		{"update the shopping list", ParsedCommand{Action: ActionUpdate, Content: "the shopping list"}},
		{"update and delete note 9", ParsedCommand{Action: ActionUpdate, NoteID: id(9), Content: "and delete note 9"}},
		{"Delete note 42", ParsedCommand{Action: ActionDelete, NoteID: id(42)}},
		{"remove note 5.", ParsedCommand{Action: ActionDelete}},
		{"delete note 99999999999999999999 12", ParsedCommand{Action: ActionDelete, NoteID: id(12)}},
		{"delete 3 apples from note 8", ParsedCommand{Action: ActionDelete, NoteID: id(3)}},
		{"search meeting notes", ParsedCommand{Action: ActionSearch, Keyword: "meeting notes"}},
		{"find groceries", ParsedCommand{Action: ActionSearch, Keyword: "groceries"}},
		{"Search", ParsedCommand{Action: ActionSearch}},
		{"can you find my search history", ParsedCommand{Action: ActionSearch, Keyword: "my search history"}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.in))
		})
	}
}

func TestParsedCommandID(t *testing.T) {
	assert.Equal(t, int64(0), ParsedCommand{}.ID())
	assert.False(t, ParsedCommand{}.HasID())
	c := Parse("delete note 5")
	assert.True(t, c.HasID())
	assert.Equal(t, int64(5), c.ID())
}

func equal(a, b ParsedCommand) bool {
	if a.Action != b.Action || a.Content != b.Content || a.Keyword != b.Keyword {
		return false
	}
	if (a.NoteID == nil) != (b.NoteID == nil) {
		return false
	}
	return a.NoteID == nil || *a.NoteID == *b.NoteID
}

func hasTrigger(s string) bool {
	s = strings.ToLower(s)
	for _, r := range rules {
		if containsAny(s, r.triggers) {
			return true
		}
	}
	return false
}

func TestParseProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("parsing is deterministic", prop.ForAll(
		func(s string) bool {
			return equal(Parse(s), Parse(s))
		},
		gen.AnyString(),
	))

	properties.Property("create wins over every other keyword", prop.ForAll(
		func(a, b string) bool {
			return Parse(a+" create "+b).Action == ActionCreate
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("standalone digit token is extracted as the id", prop.ForAll(
		func(d int64, verb string) bool {
			c := Parse(verb + " note " + strconv.FormatInt(d, 10) + " please")
			return c.NoteID != nil && *c.NoteID == d
		},
		gen.Int64Range(0, math.MaxInt64),
		gen.OneConstOf("delete", "remove note", "update", "edit note"),
	))

	properties.Property("digit token with punctuation is ignored", prop.ForAll(
		func(d int64) bool {
			return Parse("delete note "+strconv.FormatInt(d, 10)+".").NoteID == nil
		},
		gen.Int64Range(0, math.MaxInt64),
	))

	properties.Property("text without keywords becomes a note as is", prop.ForAll(
		func(s string) bool {
			c := Parse(s)
			return c.Action == ActionCreate && c.Content == s && c.NoteID == nil
		},
		gen.AlphaString().SuchThat(func(s string) bool { return !hasTrigger(s) }),
	))

	properties.Property("search keyword is the text after the trigger", prop.ForAll(
		func(kw string) bool {
			if hasTrigger(kw) {
				return true
			}
			c := Parse("search " + kw)
			return c.Action == ActionSearch && c.Keyword == strings.ToLower(strings.TrimSpace(kw))
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
