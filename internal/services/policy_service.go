package services

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/you/classhub/domain"
	"github.com/you/classhub/internal/config"
)

// CasbinEnforcerWrapper wraps the real Casbin enforcer to implement our interface
type CasbinEnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

// NewCasbinEnforcerWrapper creates a wrapper for the real Casbin enforcer
func NewCasbinEnforcerWrapper(enforcer *casbin.Enforcer) domain.CasbinEnforcer {
	return &CasbinEnforcerWrapper{enforcer: enforcer}
}

func (w *CasbinEnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *CasbinEnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *CasbinEnforcerWrapper) Enforce(rvals ...interface{}) (bool, error) {
	return w.enforcer.Enforce(rvals...)
}

func (w *CasbinEnforcerWrapper) GetPolicy() ([][]string, error) {
	return w.enforcer.GetPolicy()
}

// PolicyServiceImpl implements domain.PolicyService using Casbin. The
// enforcer's adapter auto-saves, so every change is persisted immediately.
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return NewPolicyServiceWithEnforcer(NewCasbinEnforcerWrapper(enforcer))
}

// NewPolicyServiceWithEnforcer creates a policy service over any CasbinEnforcer
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{
		enforcer: enforcer,
	}
}

// AddPolicy implements domain.PolicyService. Adding an existing rule is a no-op.
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	_, err := p.enforcer.AddPolicy(role, resource, action)
	return err
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	_, err := p.enforcer.RemovePolicy(role, resource, action)
	return err
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, _ := p.enforcer.GetPolicy()
	return policies
}

// SeedPolicies adds every rule that is not stored yet and returns how many
// were added.
func SeedPolicies(svc domain.PolicyService, rules []config.PolicyRule) (int, error) {
	existing := make(map[[3]string]bool)
	for _, p := range svc.GetPolicies() {
		if len(p) >= 3 {
			existing[[3]string{p[0], p[1], p[2]}] = true
		}
	}

	added := 0
	for _, r := range rules {
		key := [3]string{r.Role, r.Path, r.Methods}
		if existing[key] {
			continue
		}
		if err := svc.AddPolicy(r.Role, r.Path, r.Methods); err != nil {
			return added, fmt.Errorf("failed to add policy %s %s %s: %w", r.Role, r.Path, r.Methods, err)
		}
		existing[key] = true
		added++
	}
	return added, nil
}
