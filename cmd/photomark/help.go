package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

// helpTemplates holds one template per command, named after its flag set.
var helpTemplates = sync.OnceValue(func() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"flags": func(fs *flag.FlagSet) (all []*flag.Flag) {
			fs.VisitAll(func(f *flag.Flag) { all = append(all, f) })
			return all
		},
	}).ParseFS(helpFS, "templates/*.txt"))
})

type HelpData interface {
	Program() string
	FlagSet() *flag.FlagSet
}

type UsageError struct {
	of     HelpData
	reason string
}

func (e *UsageError) Error() string {
	var buf bytes.Buffer
	name := e.of.FlagSet().Name() + ".txt"
	if err := helpTemplates().ExecuteTemplate(&buf, name, e.of); err != nil {
		log.Printf("error rendering help template: %v", err)
		return err.Error()
	}
	if e.reason != "" {
		return e.reason + "\n\n" + buf.String()
	}
	return buf.String()
}

func usageFunc(h HelpData) func() {
	return func() {
		fmt.Fprint(os.Stderr, (&UsageError{of: h}).Error())
	}
}
