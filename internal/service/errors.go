// Package service implements the business logic behind the domain service
// interfaces: cart revalidation, coupon management, checkout, fulfilment
// status, and payment orchestration. Services depend on repository.Querier
// for persistence and on billing.Provider for payment providers.
package service

import (
	"errors"

	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/repository"
)

// ErrNotStoreOwner is returned when a seller operates on a store they do
// not own.
var ErrNotStoreOwner = domain.Forbidden("", "Unauthorized Access: Store does not belong to you.")

// orDomainErr maps the repository's not-found sentinel onto the given
// domain error and passes everything else through.
func orDomainErr(err error, notFound *domain.Error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return err
}
