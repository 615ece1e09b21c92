//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"market-dispatch/internal/domain"
	"market-dispatch/internal/repository"
)

type OrderRepositorySuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	repo     *repository.OrderRepo
	couriers *repository.CourierRepo
}

func (s *OrderRepositorySuite) SetupSuite() {
	s.Require().NotNil(tcPool, "tcPool must be initialized in TestMain")

	s.pool = tcPool
	s.repo = repository.NewOrderRepo(tcPool)
	s.couriers = repository.NewCourierRepo(tcPool)
}

func (s *OrderRepositorySuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), `TRUNCATE orders, couriers RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

// insertOrder seeds an order row the way the marketplace backend would.
func (s *OrderRepositorySuite) insertOrder(id string, status domain.OrderStatus) {
	s.T().Helper()
	_, err := s.pool.Exec(context.Background(), `
        INSERT INTO orders (id, status, lat, lng) VALUES ($1, $2, 41.30, 69.24)
    `, id, string(status))
	s.Require().NoError(err)
}

func (s *OrderRepositorySuite) newCourier(phone string) int64 {
	s.T().Helper()
	id, err := s.couriers.Create(context.Background(), &domain.Courier{
		Name:          "Courier " + phone,
		Phone:         phone,
		Status:        domain.CourierOnline,
		TransportType: domain.TransportTypeFoot,
	})
	s.Require().NoError(err)
	return id
}

func (s *OrderRepositorySuite) TestGetByID() {
	ctx := context.Background()

	s.insertOrder("ord-1", domain.OrderCreated)

	got, err := s.repo.GetByID(ctx, "ord-1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("ord-1", got.ID)
	s.Equal(domain.OrderCreated, got.Status)
	s.Equal(domain.PaymentPending, got.PaymentStatus)
	s.Nil(got.CourierID)

	missing, err := s.repo.GetByID(ctx, "ord-nope")
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *OrderRepositorySuite) TestAssign_ClaimsOnlyOnce() {
	ctx := context.Background()

	s.insertOrder("ord-1", domain.OrderCreated)
	c1 := s.newCourier("+998900000001")
	c2 := s.newCourier("+998900000002")

	ok, err := s.repo.Assign(ctx, "ord-1", c1)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.repo.Assign(ctx, "ord-1", c2)
	s.Require().NoError(err)
	s.False(ok, "second claim must lose")

	got, err := s.repo.GetByID(ctx, "ord-1")
	s.Require().NoError(err)
	s.Require().NotNil(got.CourierID)
	s.Equal(c1, *got.CourierID)
	s.Equal(domain.OrderAssigned, got.Status)
}

func (s *OrderRepositorySuite) TestAssign_ConcurrentClaims_SingleWinner() {
	ctx := context.Background()

	s.insertOrder("ord-1", domain.OrderCreated)

	const workers = 8
	ids := make([]int64, workers)
	for i := range ids {
		ids[i] = s.newCourier(fmt.Sprintf("+9989000000%02d", i+1))
	}

	var wg sync.WaitGroup
	wins := make(chan int64, workers)
	for _, id := range ids {
		wg.Add(1)
		go func(courierID int64) {
			defer wg.Done()
			ok, err := s.repo.Assign(ctx, "ord-1", courierID)
			if err == nil && ok {
				wins <- courierID
			}
		}(id)
	}
	wg.Wait()
	close(wins)

	var winners []int64
	for id := range wins {
		winners = append(winners, id)
	}
	s.Require().Len(winners, 1, "exactly one claim must succeed")

	got, err := s.repo.GetByID(ctx, "ord-1")
	s.Require().NoError(err)
	s.Require().NotNil(got.CourierID)
	s.Equal(winners[0], *got.CourierID)
}

func (s *OrderRepositorySuite) TestUpdateStatus_RequiresCurrentStatus() {
	ctx := context.Background()

	s.insertOrder("ord-1", domain.OrderAssigned)

	ok, err := s.repo.UpdateStatus(ctx, "ord-1", domain.OrderAssigned, domain.OrderDelivering)
	s.Require().NoError(err)
	s.True(ok)

	// повторный переход из того же статуса уже не проходит
	ok, err = s.repo.UpdateStatus(ctx, "ord-1", domain.OrderAssigned, domain.OrderDelivering)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *OrderRepositorySuite) TestMarkPaid_Idempotent() {
	ctx := context.Background()

	s.insertOrder("ord-1", domain.OrderCreated)

	changed, err := s.repo.MarkPaid(ctx, "ord-1")
	s.Require().NoError(err)
	s.True(changed)

	changed, err = s.repo.MarkPaid(ctx, "ord-1")
	s.Require().NoError(err)
	s.False(changed, "repeated confirmation must be a no-op")

	got, err := s.repo.GetByID(ctx, "ord-1")
	s.Require().NoError(err)
	s.Equal(domain.PaymentPaid, got.PaymentStatus)
	s.Equal(domain.OrderCreated, got.Status, "payment must not touch delivery status")
}

func (s *OrderRepositorySuite) TestActiveByCourier() {
	ctx := context.Background()

	c1 := s.newCourier("+998900000001")

	s.insertOrder("ord-done", domain.OrderCreated)
	s.insertOrder("ord-live", domain.OrderCreated)

	ok, err := s.repo.Assign(ctx, "ord-done", c1)
	s.Require().NoError(err)
	s.Require().True(ok)
	_, err = s.pool.Exec(ctx, `UPDATE orders SET status='delivered' WHERE id='ord-done'`)
	s.Require().NoError(err)

	ok, err = s.repo.Assign(ctx, "ord-live", c1)
	s.Require().NoError(err)
	s.Require().True(ok)

	got, err := s.repo.ActiveByCourier(ctx, c1)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("ord-live", got.ID)

	none, err := s.repo.ActiveByCourier(ctx, 9999)
	s.Require().NoError(err)
	s.Nil(none)
}

func (s *OrderRepositorySuite) TestCancel() {
	ctx := context.Background()

	c1 := s.newCourier("+998900000001")
	s.insertOrder("ord-1", domain.OrderCreated)

	ok, err := s.repo.Assign(ctx, "ord-1", c1)
	s.Require().NoError(err)
	s.Require().True(ok)

	courierID, cancelled, err := s.repo.Cancel(ctx, "ord-1")
	s.Require().NoError(err)
	s.True(cancelled)
	s.Require().NotNil(courierID)
	s.Equal(c1, *courierID)

	// уже отменён - второй раз не проходит
	_, cancelled, err = s.repo.Cancel(ctx, "ord-1")
	s.Require().NoError(err)
	s.False(cancelled)
}

func (s *OrderRepositorySuite) TestCancel_DeliveredUntouched() {
	ctx := context.Background()

	s.insertOrder("ord-1", domain.OrderDelivered)

	_, cancelled, err := s.repo.Cancel(ctx, "ord-1")
	s.Require().NoError(err)
	s.False(cancelled)

	got, err := s.repo.GetByID(ctx, "ord-1")
	s.Require().NoError(err)
	s.Equal(domain.OrderDelivered, got.Status)
}

func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(OrderRepositorySuite))
}
