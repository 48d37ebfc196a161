package testutil

import (
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// FakeContext records what a handler sends back. Only the methods the
// handlers use are implemented; anything else panics on the nil embed.
type FakeContext struct {
	tele.Context

	User    *tele.User
	Press   *tele.Callback
	Input   string
	EditErr error
	Sent    []string
	Markups []*tele.ReplyMarkup
	Edited  []string
	Answers []*tele.CallbackResponse
	Deleted bool
}

// NewFakeMessage creates a context for a text message from userID
func NewFakeMessage(userID int64, text string) *FakeContext {
	return &FakeContext{
		User:  &tele.User{ID: userID, Username: "tester"},
		Input: text,
	}
}

// NewFakeCallback creates a context for a button press from userID
func NewFakeCallback(userID int64, unique, data string) *FakeContext {
	return &FakeContext{
		User:  &tele.User{ID: userID, Username: "tester"},
		Press: &tele.Callback{ID: "cb-1", Unique: unique, Data: data},
	}
}

func (f *FakeContext) Sender() *tele.User {
	return f.User
}

func (f *FakeContext) Callback() *tele.Callback {
	return f.Press
}

func (f *FakeContext) Text() string {
	return f.Input
}

func (f *FakeContext) Send(what interface{}, opts ...interface{}) error {
	f.Sent = append(f.Sent, fmt.Sprint(what))
	f.Markups = append(f.Markups, markupOf(opts))
	return nil
}

func (f *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	if f.EditErr != nil {
		return f.EditErr
	}
	f.Edited = append(f.Edited, fmt.Sprint(what))
	f.Markups = append(f.Markups, markupOf(opts))
	return nil
}

func (f *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		f.Answers = append(f.Answers, &tele.CallbackResponse{})
		return nil
	}
	f.Answers = append(f.Answers, resp...)
	return nil
}

func (f *FakeContext) Delete() error {
	f.Deleted = true
	return nil
}

// LastSent returns the most recent sent message or an empty string
func (f *FakeContext) LastSent() string {
	if len(f.Sent) == 0 {
		return ""
	}
	return f.Sent[len(f.Sent)-1]
}

func markupOf(opts []interface{}) *tele.ReplyMarkup {
	for _, opt := range opts {
		if m, ok := opt.(*tele.ReplyMarkup); ok {
			return m
		}
	}
	return nil
}
