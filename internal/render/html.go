package render

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"quizdoc/internal/question"
)

const pageStyle = `body{font-family:Helvetica,Arial,sans-serif;max-width:48rem;margin:2rem auto;line-height:1.5}
h2{border-bottom:1px solid #ccc;padding-bottom:.25rem}
ol.options{list-style:none;padding-left:1.5rem}
.question{font-weight:bold;margin-top:1rem}`

// QuestionnairePage renders a complete HTML document.
func QuestionnairePage(doc Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := templ.EscapeString(doc.title())
		if _, err := io.WriteString(w, "<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"><title>"+title+"</title><style>"+pageStyle+"</style></head><body>\n<h1>"+title+"</h1>\n"); err != nil {
			return err
		}
		for _, group := range doc.Groups() {
			if err := SectionBlock(group).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body></html>\n")
		return err
	})
}

// SectionBlock renders one kind heading and its questions.
func SectionBlock(group Group) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<section class=\"kind-"+string(group.Kind)+"\"><h2>"+templ.EscapeString(group.Heading)+"</h2>\n"); err != nil {
			return err
		}
		for _, q := range group.Questions {
			if err := QuestionItem(q).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</section>\n")
		return err
	})
}

// QuestionItem renders a prompt with its options.
func QuestionItem(q question.Question) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<p class=\"question\">"+templ.EscapeString(q.Prompt())+"</p>\n"); err != nil {
			return err
		}
		if q.OptionCount() == 0 {
			return nil
		}
		if _, err := io.WriteString(w, "<ol class=\"options\">"); err != nil {
			return err
		}
		for _, opt := range q.Options() {
			if _, err := io.WriteString(w, "<li>"+templ.EscapeString(opt.Text())+"</li>"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ol>\n")
		return err
	})
}

func writeHTML(w io.Writer, doc Document) error {
	return QuestionnairePage(doc).Render(context.Background(), w)
}
