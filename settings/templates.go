package settings

import (
	"bytes"
	"html/template"
	"os"

	"go-home.io/x/ttlock/plugins/common"
)

// ITemplateProvider defines template logic.
type ITemplateProvider interface {
	Process([]byte) []byte
}

// Template engine provider.
// Config files run through it before yaml parsing, so env variables
// and secrets are usable in any field.
type templateProvider struct {
	logger    common.ILoggerProvider
	functions template.FuncMap
}

// Contains data required for a new template.
type constructTemplate struct {
	Secrets common.ISecretProvider
	Logger  common.ILoggerProvider
}

// Constructs a new template engine.
func newTemplateProvider(ctor *constructTemplate) *templateProvider {
	provider := &templateProvider{
		logger: ctor.Logger,
	}

	provider.functions = template.FuncMap{
		"env": provider.env,
	}

	if ctor.Secrets != nil {
		provider.functions["sec"] = ctor.Secrets.Get
	}

	return provider
}

// Process runs a single config file through the template engine.
// A file that fails to render is a hard error, a silently half-rendered
// config is worse than a refused start.
func (p *templateProvider) Process(rawFile []byte) []byte {
	tpl, err := template.New("config").Funcs(p.functions).Parse(string(rawFile))
	if err != nil {
		p.logger.Fatal("Failed to parse config template", err, common.LogSystemToken, logSystem)
	}

	var b bytes.Buffer
	err = tpl.Execute(&b, nil)
	if err != nil {
		p.logger.Fatal("Failed to render config template", err, common.LogSystemToken, logSystem)
	}

	return b.Bytes()
}

// Returns environment variable.
func (p *templateProvider) env(name string) string {
	p.logger.Debug("Template is requesting environment variable",
		common.LogNameToken, name, common.LogSystemToken, logSystem)
	return os.Getenv(name)
}
