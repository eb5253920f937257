package server

import (
	"embed"
	"html/template"
	"io/fs"
	"sync"
)

//go:embed templates/*
var templateFiles embed.FS

var templatesFS = sync.OnceValue(func() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
})

var templateFuncs = template.FuncMap{
	// optionLabel turns a zero based option index into A, B, C, D.
	"optionLabel": func(i int) string {
		return string(rune('A' + i))
	},
}

func TemplateFilesFS() fs.FS {
	return templatesFS()
}

// ParseTemplate parses a template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Funcs(templateFuncs).Parse(string(content))
}
