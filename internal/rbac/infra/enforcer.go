package infra

import (
	_ "embed"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// subject, domain (company id), resource, action
//
//go:embed model.conf
var modelText string

// NewEnforcer builds an in-memory enforcer; policies are loaded per company
// by the rbac service.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	return casbin.NewEnforcer(m)
}
