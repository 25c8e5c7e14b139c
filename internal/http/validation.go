package http

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/nurpe/siteops-admin/internal/model"
)

var registerOnce sync.Once

// registerValidators adds the enum rules used in request binding tags.
func registerValidators() error {
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	rules := map[string]func(string) bool{
		"project_status":   func(v string) bool { return model.ProjectStatus(v).Valid() },
		"task_status":      func(v string) bool { return model.TaskStatus(v).Valid() },
		"task_priority":    func(v string) bool { return model.TaskPriority(v).Valid() },
		"quotation_status": func(v string) bool { return model.QuotationStatus(v).Valid() },
		"user_role":        func(v string) bool { return model.UserRole(v).Valid() },
	}
	for name, valid := range rules {
		valid := valid
		err := engine.RegisterValidation(name, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
	}
	return nil
}
