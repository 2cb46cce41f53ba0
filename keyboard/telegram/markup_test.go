package telegram_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/itoolpack/itoolpack/keyboard/telegram"
	"github.com/itoolpack/itoolpack/localization"
)

type stubRenderer struct {
	layout *localization.Layout
	err    error
}

func (r stubRenderer) Keyboard(_, _ string) (*localization.Layout, error) {
	return r.layout, r.err
}

type MarkupTestSuite struct {
	suite.Suite
}

func TestMarkupSuite(t *testing.T) {
	suite.Run(t, &MarkupTestSuite{})
}

func (s *MarkupTestSuite) TestInlineKeepsRowShape() {
	rows := [][]localization.Button{
		{{Label: "Start", Action: "start"}, {Label: "Site", Action: "https://example.com"}},
		{{Label: "Chat", Action: "tg://resolve?domain=itoolpack"}},
	}

	markup := telegram.Inline(rows, 2)

	s.Require().Len(markup.InlineKeyboard, 2)
	s.Require().Len(markup.InlineKeyboard[0], 2)
	s.Require().Len(markup.InlineKeyboard[1], 1)

	start := markup.InlineKeyboard[0][0]
	s.Equal("Start", start.Text)
	s.Equal("start", start.Data)
	s.Empty(start.URL)

	site := markup.InlineKeyboard[0][1]
	s.Equal("Site", site.Text)
	s.Equal("https://example.com", site.URL)
	s.Empty(site.Data)

	s.Equal("tg://resolve?domain=itoolpack", markup.InlineKeyboard[1][0].URL)
}

func (s *MarkupTestSuite) TestInlineEmptyLayout() {
	markup := telegram.Inline(nil, 2)
	s.Empty(markup.InlineKeyboard)
}

func (s *MarkupTestSuite) TestRender() {
	renderer := stubRenderer{layout: &localization.Layout{
		Rows:  [][]localization.Button{{{Label: "Yes", Action: "yes"}, {Label: "No", Action: "no"}}},
		Width: 2,
	}}

	markup, err := telegram.Render(renderer, "confirm", "en")
	s.Require().NoError(err)
	s.Require().Len(markup.InlineKeyboard, 1)
	s.Equal("No", markup.InlineKeyboard[0][1].Text)
	s.Equal("no", markup.InlineKeyboard[0][1].Data)
}

func (s *MarkupTestSuite) TestRenderPropagatesErrors() {
	notFound := &localization.NoKeyboardDefinedError{Key: "greet", Language: "en"}

	markup, err := telegram.Render(stubRenderer{err: notFound}, "greet", "en")
	s.Nil(markup)
	s.Require().True(errors.Is(err, localization.ErrNoKeyboardDefined))
}
