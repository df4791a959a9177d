//go:build wireinject
// +build wireinject

package ledger

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/stockroomlabs/stockroom/internal/ledger/delivery/http"
	"github.com/stockroomlabs/stockroom/internal/ledger/domain"
	"github.com/stockroomlabs/stockroom/internal/ledger/repository"
	productdomain "github.com/stockroomlabs/stockroom/internal/product/domain"
	"github.com/stockroomlabs/stockroom/kafka"
)

// ProvideMovementRepository provides the ledger repository
func ProvideMovementRepository(db *gorm.DB) domain.MovementRepository {
	return repository.NewGormMovementRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideMovementRepository,
)

// InitializeHTTPHandler initializes the ledger HTTP handler
func InitializeHTTPHandler(db *gorm.DB, products productdomain.ProductRepository, publisher *kafka.Publisher) (*http.MovementHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewMovementHandler,
	)
	return nil, nil
}
