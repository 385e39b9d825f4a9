package create_booking

import (
	"fmt"
	"net/mail"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	// Ровно один способ идентифицировать клиента
	provided := 0
	if req.GuestEmail != nil {
		provided++
	}
	if req.Client != nil {
		provided++
	}
	if req.ClientID != nil {
		provided++
	}
	if provided != 1 {
		return fmt.Errorf("%w: exactly one of email, client or clientID is required", ErrInvalidInput)
	}

	if req.GuestEmail != nil {
		if err := validateEmail(*req.GuestEmail); err != nil {
			return err
		}
	}

	if req.Client != nil {
		if req.Client.FirstName == "" || req.Client.LastName == "" {
			return fmt.Errorf("%w: client first and last name are required", ErrInvalidInput)
		}
		if err := validateEmail(req.Client.Email); err != nil {
			return err
		}
	}

	if req.ClientID != nil && *req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.CaregiverName != nil && len(*req.CaregiverName) > domain.MaxCaregiverNameLength {
		return fmt.Errorf("%w: caregiver name must not exceed %d characters", ErrInvalidInput, domain.MaxCaregiverNameLength)
	}

	if req.CreatedVia != "" && !validCreatedVia(req.CreatedVia) {
		return fmt.Errorf("%w: unknown creation channel %q", ErrInvalidInput, req.CreatedVia)
	}

	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(email) > domain.MaxEmailLength {
		return fmt.Errorf("%w: email must not exceed %d characters", ErrInvalidInput, domain.MaxEmailLength)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address: %v", ErrInvalidInput, err)
	}
	return nil
}

func validCreatedVia(via string) bool {
	switch domain.CreatedVia(via) {
	case domain.ViaWeb, domain.ViaAdmin, domain.ViaPhone, domain.ViaAPI:
		return true
	}
	return false
}
