// Package module implements the invocation contract between dnfbridge and
// the calling automation tool: parameter parsing and validation, the JSON
// request/response codec, and the dispatch of one invocation end to end.
package module

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dnfbridge/dnfbridge/pkg/engine"
)

// Params is one invocation's input. Exactly one of Name and List must be
// supplied. Pkg is an accepted alias for Name.
type Params struct {
	Name            string `json:"name,omitempty"`
	Pkg             string `json:"pkg,omitempty"`
	State           string `json:"state,omitempty" validate:"omitempty,oneof=present installed absent removed latest"`
	List            string `json:"list,omitempty" validate:"omitempty,oneof=installed available updates repos"`
	EnableRepo      string `json:"enablerepo,omitempty"`
	DisableRepo     string `json:"disablerepo,omitempty"`
	ConfFile        string `json:"conf_file,omitempty"`
	DisableGPGCheck bool   `json:"disable_gpg_check,omitempty"`
}

var validate = validator.New()

// Normalize resolves the pkg alias and applies the default state.
func (p *Params) Normalize() {
	if p.Name == "" {
		p.Name = p.Pkg
	}
	p.Pkg = ""
	if p.State == "" {
		p.State = "installed"
	}
}

// Validate checks field values and the name/list exclusivity rule.
func (p *Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return engine.NewConfigurationError("invalid parameters", err)
	}
	if (p.Name == "") == (p.List == "") {
		return engine.NewConfigurationError("exactly one of name and list must be supplied", nil)
	}
	return nil
}

// DesiredState maps the state parameter, including its aliases, onto the
// convergence target state.
func (p *Params) DesiredState() engine.State {
	switch p.State {
	case "absent", "removed":
		return engine.StateAbsent
	case "latest":
		return engine.StateLatest
	}
	return engine.StatePresent
}

// Options builds the engine session options for this invocation.
func (p *Params) Options() engine.Options {
	return engine.Options{
		ConfFile: p.ConfFile,
		Repos: engine.RepoFilter{
			Enable:  splitRepoList(p.EnableRepo),
			Disable: splitRepoList(p.DisableRepo),
		},
		DisableGPGCheck: p.DisableGPGCheck,
	}
}

// splitRepoList splits a comma-separated repository id list.
func splitRepoList(s string) []string {
	if s == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(s, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
