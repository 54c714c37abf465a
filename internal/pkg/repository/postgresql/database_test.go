package postgresql

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"

	"ems/backend/foundation/web"
)

func TestValidateStruct(t *testing.T) {
	type request struct {
		EmployeeID *int
		Month      int
		Note       *string
	}

	var d Database
	id := 7

	t.Run("all required present", func(t *testing.T) {
		if err := d.ValidateStruct(&request{EmployeeID: &id, Month: 4}, "EmployeeID", "Month"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("nil pointer reported", func(t *testing.T) {
		err := d.ValidateStruct(&request{Month: 4}, "EmployeeID", "Month")
		webErr := web.GetRequestError(err)
		if webErr == nil {
			t.Fatalf("expected a request error, got %v", err)
		}
		if webErr.Status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", webErr.Status)
		}
		if _, ok := webErr.Fields["EmployeeID"]; !ok {
			t.Fatalf("missing EmployeeID in fields: %v", webErr.Fields)
		}
	})

	t.Run("zero value reported", func(t *testing.T) {
		err := d.ValidateStruct(&request{EmployeeID: &id}, "EmployeeID", "Month")
		webErr := web.GetRequestError(err)
		if webErr == nil {
			t.Fatalf("expected a request error, got %v", err)
		}
		if _, ok := webErr.Fields["Month"]; !ok {
			t.Fatalf("missing Month in fields: %v", webErr.Fields)
		}
	})

	t.Run("optional fields ignored", func(t *testing.T) {
		if err := d.ValidateStruct(&request{EmployeeID: &id, Month: 4}, "EmployeeID"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil) {
		t.Fatalf("nil must not classify as unique violation")
	}
	if IsUniqueViolation(errors.New("duplicate key value violates unique constraint")) {
		t.Fatalf("plain errors must not classify as unique violation")
	}
}
