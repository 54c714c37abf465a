package leave

import (
	"reflect"
	"testing"

	"ems/backend/internal/entity"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to approved", entity.LeavePending, entity.LeaveApproved, true},
		{"pending to rejected", entity.LeavePending, entity.LeaveRejected, true},
		{"pending stays pending", entity.LeavePending, entity.LeavePending, false},
		{"approved re-approved", entity.LeaveApproved, entity.LeaveApproved, false},
		{"approved to rejected", entity.LeaveApproved, entity.LeaveRejected, false},
		{"rejected to approved", entity.LeaveRejected, entity.LeaveApproved, false},
		{"rejected back to pending", entity.LeaveRejected, entity.LeavePending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Fatalf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestDatesBetween(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    []string
		wantErr bool
	}{
		{
			name:  "three day range",
			start: "2024-04-05",
			end:   "2024-04-07",
			want:  []string{"2024-04-05", "2024-04-06", "2024-04-07"},
		},
		{
			name:  "single day",
			start: "2024-04-05",
			end:   "2024-04-05",
			want:  []string{"2024-04-05"},
		},
		{
			name:  "crosses month boundary",
			start: "2024-01-30",
			end:   "2024-02-02",
			want:  []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"},
		},
		{
			name:  "crosses leap day",
			start: "2024-02-28",
			end:   "2024-03-01",
			want:  []string{"2024-02-28", "2024-02-29", "2024-03-01"},
		},
		{
			name:    "reversed range",
			start:   "2024-04-07",
			end:     "2024-04-05",
			wantErr: true,
		},
		{
			name:    "malformed date",
			start:   "05-04-2024",
			end:     "2024-04-07",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DatesBetween(tt.start, tt.end)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DatesBetween(%q, %q) expected error, got %v", tt.start, tt.end, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DatesBetween(%q, %q) unexpected error: %v", tt.start, tt.end, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("DatesBetween(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
