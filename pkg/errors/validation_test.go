package errors

import "testing"

func TestValidatePageSize(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{1, false},
		{10, false},
		{MaxPageSize, false},
		{0, true},
		{-5, true},
		{MaxPageSize + 1, true},
	}

	for _, tt := range tests {
		err := ValidatePageSize(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePageSize(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && GetCode(err) != ErrCodeInvalidPageSize {
			t.Errorf("ValidatePageSize(%d) code = %v", tt.n, GetCode(err))
		}
	}
}
