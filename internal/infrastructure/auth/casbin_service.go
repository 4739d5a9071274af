package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// RBACModel matches a role against a keyMatch2 path pattern and a method regex
const RBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService creates an enforcer whose policies live in the casbin_rule table
func NewCasbinService(db *gorm.DB) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("casbin adapter: %w", err)
	}
	m, err := model.NewModelFromString(RBACModel)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}
	E, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, err
	}
	if err := E.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{E}, nil
}

// NewMemoryEnforcer creates an enforcer without persistence
func NewMemoryEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(RBACModel)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}
	return casbin.NewEnforcer(m)
}
