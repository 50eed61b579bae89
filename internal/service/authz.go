package service

import "stayspot/internal/apperr"

// authorizeOwner permits an operation only when the acting user owns the
// resource. Every mutating spot operation runs through this single check.
func authorizeOwner(ownerID, userID int) error {
	if ownerID != userID {
		return apperr.Forbidden()
	}
	return nil
}
