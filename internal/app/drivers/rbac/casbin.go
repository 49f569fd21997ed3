package rbac

import (
	"clinic-service/internal/app/config"
	"log"

	"github.com/casbin/casbin/v2"
)

func NewEnforcer(internalConfig *config.InternalConfig) *casbin.Enforcer {
	enforcer, err := casbin.NewEnforcer(internalConfig.App.RBACModelPath, internalConfig.App.RBACPolicyPath)
	if err != nil {
		log.Fatalf("Failed to load RBAC policy: %s", err.Error())
	}

	log.Println("Successfully loaded RBAC policy")
	return enforcer
}
