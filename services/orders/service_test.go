package orders

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/omrannajeeb/leohol/models"
)

// memStore is an in-memory WorkFactory. In transactional mode all writes are
// staged inside the work and applied on Commit; in sequential mode writes hit
// the shared state immediately, mirroring the degraded database path.
type memStore struct {
	products   map[uint]*models.Product
	orders     []*models.Order
	recipients []*models.Recipient

	sequential   bool
	conflicts    int // number of order Creates to fail with a number conflict
	recipientErr error
	commitErr    error
	nextOrderID  uint
}

func newMemStore(products ...*models.Product) *memStore {
	m := &memStore{products: map[uint]*models.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memStore) Begin(ctx context.Context) Work {
	return &memWork{store: m, staged: map[uint]*models.Product{}}
}

type memWork struct {
	store      *memStore
	staged     map[uint]*models.Product
	orders     []*models.Order
	recipients []*models.Recipient
}

func (w *memWork) Products() ProductStore     { return w }
func (w *memWork) Orders() OrderStore         { return w }
func (w *memWork) Recipients() RecipientStore { return w }
func (w *memWork) Transactional() bool        { return !w.store.sequential }

func (w *memWork) FindForUpdate(id uint) (*models.Product, error) {
	p, ok := w.store.products[id]
	if !ok {
		return nil, nil
	}
	if w.store.sequential {
		return p, nil
	}
	if staged, ok := w.staged[id]; ok {
		return staged, nil
	}
	clone := cloneProduct(p)
	w.staged[id] = clone
	return clone, nil
}

func (w *memWork) Save(p *models.Product) error {
	// Mirror the persistence hook: aggregate stock tracks the variants.
	if len(p.Sizes) > 0 {
		total := 0
		for _, s := range p.Sizes {
			total += s.Stock
		}
		p.Stock = total
	}
	if w.store.sequential {
		w.store.products[p.ID] = p
		return nil
	}
	w.staged[p.ID] = p
	return nil
}

func (w *memWork) Create(o *models.Order) error {
	if w.store.conflicts > 0 {
		w.store.conflicts--
		return fmt.Errorf("insert order: %w", ErrOrderNumberConflict)
	}
	w.store.nextOrderID++
	o.ID = w.store.nextOrderID
	if w.store.sequential {
		w.store.orders = append(w.store.orders, o)
		return nil
	}
	w.orders = append(w.orders, o)
	return nil
}

func (w *memWork) Upsert(r *models.Recipient) error {
	if w.store.recipientErr != nil {
		return w.store.recipientErr
	}
	if w.store.sequential {
		w.store.recipients = append(w.store.recipients, r)
		return nil
	}
	w.recipients = append(w.recipients, r)
	return nil
}

func (w *memWork) Commit() error {
	if w.store.commitErr != nil {
		return w.store.commitErr
	}
	for id, p := range w.staged {
		w.store.products[id] = p
	}
	w.store.orders = append(w.store.orders, w.orders...)
	w.store.recipients = append(w.store.recipients, w.recipients...)
	w.orders = nil
	w.recipients = nil
	w.staged = map[uint]*models.Product{}
	return nil
}

func (w *memWork) Rollback() {
	w.orders = nil
	w.recipients = nil
	w.staged = map[uint]*models.Product{}
}

func cloneProduct(p *models.Product) *models.Product {
	clone := *p
	clone.Sizes = append([]models.SizeVariant(nil), p.Sizes...)
	clone.Images = append([]models.ProductImage(nil), p.Images...)
	return &clone
}

type stubSettings struct{ currency string }

func (s stubSettings) DefaultCurrency() string { return s.currency }

type recordingNotifier struct {
	created []*models.Order
	updated []*models.Order
}

func (n *recordingNotifier) EmitNewOrder(o *models.Order)    { n.created = append(n.created, o) }
func (n *recordingNotifier) EmitOrderUpdate(o *models.Order) { n.updated = append(n.updated, o) }

func newTestService(store *memStore, settings stubSettings) (*Service, *recordingNotifier) {
	notifier := &recordingNotifier{}
	svc := NewService(store, nil, nil, settings, notifier, zap.NewNop())
	return svc, notifier
}

func shirt() *models.Product {
	return &models.Product{
		ID:    1,
		Name:  "Linen Shirt",
		Price: 10,
		Sizes: []models.SizeVariant{
			{ID: 11, ProductID: 1, Name: "S", Stock: 4},
			{ID: 12, ProductID: 1, Name: "M", Stock: 5},
		},
		Stock:  9,
		Images: []models.ProductImage{{URL: "https://cdn.example.com/shirt.jpg"}},
	}
}

func validRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		Items: []LineItemRequest{{ProductID: 1, Quantity: 2, Size: "M"}},
		ShippingAddress: AddressRequest{
			Street:  "12 Rainbow St",
			City:    "Amman",
			Country: "JO",
		},
		CustomerInfo: CustomerRequest{
			FirstName: "Lina",
			LastName:  "Haddad",
			Email:     "lina@example.com",
			Mobile:    "+9627912345678",
		},
		PaymentMethod: "cod",
	}
}

func TestCreateOrderReservesSizeStock(t *testing.T) {
	store := newMemStore(shirt())
	svc, notifier := newTestService(store, stubSettings{})

	resp, err := svc.CreateOrder(context.Background(), validRequest(), Actor{})
	require.NoError(t, err)

	assert.Equal(t, 20.0, resp.TotalAmount)
	assert.Equal(t, "USD", resp.Currency)
	assert.Equal(t, models.OrderStatusPending, resp.Status)
	assert.Regexp(t, regexp.MustCompile(`^ORD\d+$`), resp.OrderNumber)

	committed := store.products[1]
	assert.Equal(t, 3, committed.Sizes[1].Stock, "size M should go 5 -> 3")
	assert.Equal(t, 7, committed.Stock, "aggregate stock should track variants")

	require.Len(t, store.orders, 1)
	order := store.orders[0]
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Nil(t, order.UserID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Linen Shirt", order.Items[0].Name)
	assert.Equal(t, "M", order.Items[0].Size)
	assert.Equal(t, "https://cdn.example.com/shirt.jpg", order.Items[0].Image)

	require.Len(t, store.recipients, 1)
	assert.Equal(t, "lina@example.com", store.recipients[0].Email)

	require.Len(t, notifier.created, 1)
	assert.Same(t, order, notifier.created[0])
}

func TestCreateOrderAttachesAuthenticatedUser(t *testing.T) {
	store := newMemStore(shirt())
	svc, _ := newTestService(store, stubSettings{})

	userID := "user-42"
	_, err := svc.CreateOrder(context.Background(), validRequest(), Actor{UserID: &userID})
	require.NoError(t, err)

	require.Len(t, store.orders, 1)
	require.NotNil(t, store.orders[0].UserID)
	assert.Equal(t, "user-42", *store.orders[0].UserID)
}

func TestCreateOrderCurrencyResolution(t *testing.T) {
	t.Run("request currency wins", func(t *testing.T) {
		store := newMemStore(shirt())
		svc, _ := newTestService(store, stubSettings{currency: "EUR"})

		req := validRequest()
		req.Currency = "JOD"
		resp, err := svc.CreateOrder(context.Background(), req, Actor{})
		require.NoError(t, err)

		assert.Equal(t, "JOD", resp.Currency)
		rate := models.CurrencyExchangeRate("JOD")
		assert.InDelta(t, 10*rate*2, resp.TotalAmount, 1e-9)
		assert.Equal(t, rate, store.orders[0].ExchangeRate)
	})

	t.Run("falls back to store default", func(t *testing.T) {
		store := newMemStore(shirt())
		svc, _ := newTestService(store, stubSettings{currency: "EUR"})

		resp, err := svc.CreateOrder(context.Background(), validRequest(), Actor{})
		require.NoError(t, err)
		assert.Equal(t, "EUR", resp.Currency)
	})

	t.Run("falls back to USD without a default", func(t *testing.T) {
		store := newMemStore(shirt())
		svc, _ := newTestService(store, stubSettings{})

		resp, err := svc.CreateOrder(context.Background(), validRequest(), Actor{})
		require.NoError(t, err)
		assert.Equal(t, "USD", resp.Currency)
	})

	t.Run("rejects unsupported currency", func(t *testing.T) {
		store := newMemStore(shirt())
		svc, _ := newTestService(store, stubSettings{})

		req := validRequest()
		req.Currency = "XXX"
		_, err := svc.CreateOrder(context.Background(), req, Actor{})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Invalid currency", verr.Message)
	})
}

func TestCreateOrderValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*CreateOrderRequest)
		message string
	}{
		{
			name:    "empty items",
			mutate:  func(r *CreateOrderRequest) { r.Items = nil },
			message: "Order must contain at least one item",
		},
		{
			name:    "zero quantity",
			mutate:  func(r *CreateOrderRequest) { r.Items[0].Quantity = 0 },
			message: "Item quantity must be at least 1",
		},
		{
			name:    "missing email",
			mutate:  func(r *CreateOrderRequest) { r.CustomerInfo.Email = "" },
			message: "Customer email and mobile number are required",
		},
		{
			name:    "missing name",
			mutate:  func(r *CreateOrderRequest) { r.CustomerInfo.LastName = "" },
			message: "Customer first and last name are required",
		},
		{
			name:    "bad mobile",
			mutate:  func(r *CreateOrderRequest) { r.CustomerInfo.Mobile = "not-a-number" },
			message: "Invalid mobile number format",
		},
		{
			name:    "bad secondary mobile",
			mutate:  func(r *CreateOrderRequest) { r.CustomerInfo.SecondaryMobile = "12" },
			message: "Invalid secondary mobile number format",
		},
		{
			name:    "incomplete address",
			mutate:  func(r *CreateOrderRequest) { r.ShippingAddress.City = "" },
			message: "Complete shipping address is required",
		},
		{
			name:    "unsupported country",
			mutate:  func(r *CreateOrderRequest) { r.ShippingAddress.Country = "FR" },
			message: "Shipping to country 'FR' is not supported",
		},
		{
			name:    "unknown payment method",
			mutate:  func(r *CreateOrderRequest) { r.PaymentMethod = "bitcoin" },
			message: "Invalid payment method",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore(shirt())
			svc, notifier := newTestService(store, stubSettings{})

			req := validRequest()
			tc.mutate(req)

			_, err := svc.CreateOrder(context.Background(), req, Actor{})
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.message, verr.Message)
			assert.Empty(t, store.orders)
			assert.Empty(t, notifier.created)
		})
	}
}

func TestCreateOrderInsufficientSizeStock(t *testing.T) {
	store := newMemStore(shirt())
	svc, notifier := newTestService(store, stubSettings{})

	req := validRequest()
	req.Items[0].Quantity = 6

	_, err := svc.CreateOrder(context.Background(), req, Actor{})
	var availErr *AvailabilityError
	require.ErrorAs(t, err, &availErr)
	assert.Equal(t,
		"Insufficient stock for Linen Shirt (size: M). Available: 5, Requested: 6",
		err.Error())

	// Transactional: nothing leaks out of the aborted work.
	assert.Equal(t, 5, store.products[1].Sizes[1].Stock)
	assert.Empty(t, store.orders)
	assert.Empty(t, notifier.created)
}

func TestCreateOrderInsufficientFlatStock(t *testing.T) {
	store := newMemStore(&models.Product{ID: 2, Name: "Tote Bag", Price: 8, Stock: 1})
	svc, _ := newTestService(store, stubSettings{})

	req := validRequest()
	req.Items = []LineItemRequest{{ProductID: 2, Quantity: 2}}

	_, err := svc.CreateOrder(context.Background(), req, Actor{})
	require.Error(t, err)
	assert.Equal(t, "Insufficient stock for Tote Bag. Available: 1, Requested: 2", err.Error())
}

func TestCreateOrderUnknownSize(t *testing.T) {
	store := newMemStore(shirt())
	svc, _ := newTestService(store, stubSettings{})

	req := validRequest()
	req.Items[0].Size = "L"

	_, err := svc.CreateOrder(context.Background(), req, Actor{})
	var sizeErr *SizeNotFoundError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, "Size 'L' not found for product Linen Shirt", err.Error())
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	store := newMemStore(shirt())
	svc, _ := newTestService(store, stubSettings{})

	req := validRequest()
	req.Items[0].ProductID = 99

	_, err := svc.CreateOrder(context.Background(), req, Actor{})
	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Product not found: 99", err.Error())
}

func TestCreateOrderNumberCollisionRetriedOnce(t *testing.T) {
	store := newMemStore(shirt())
	store.conflicts = 1
	svc, notifier := newTestService(store, stubSettings{})

	resp, err := svc.CreateOrder(context.Background(), validRequest(), Actor{})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^ORD\d+-\d{1,3}$`), resp.OrderNumber)
	require.Len(t, store.orders, 1)
	require.Len(t, notifier.created, 1)
}

func TestCreateOrderSecondCollisionFails(t *testing.T) {
	store := newMemStore(shirt())
	store.conflicts = 2
	svc, notifier := newTestService(store, stubSettings{})

	_, err := svc.CreateOrder(context.Background(), validRequest(), Actor{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create order after regenerating number")
	assert.Empty(t, store.orders)
	assert.Empty(t, notifier.created)
	assert.Equal(t, 5, store.products[1].Sizes[1].Stock)
}

func TestCreateOrderRecipientFailureAborts(t *testing.T) {
	store := newMemStore(shirt())
	store.recipientErr = fmt.Errorf("constraint violation")
	svc, notifier := newTestService(store, stubSettings{})

	_, err := svc.CreateOrder(context.Background(), validRequest(), Actor{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert recipient")
	assert.Empty(t, store.orders)
	assert.Empty(t, notifier.created)
	assert.Equal(t, 5, store.products[1].Sizes[1].Stock)
}

func TestCreateOrderCommitFailureSuppressesEvent(t *testing.T) {
	store := newMemStore(shirt())
	store.commitErr = fmt.Errorf("connection reset")
	svc, notifier := newTestService(store, stubSettings{})

	_, err := svc.CreateOrder(context.Background(), validRequest(), Actor{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit order")
	assert.Empty(t, notifier.created)
}

func TestCreateOrderDegradedModeWritesImmediately(t *testing.T) {
	first := shirt()
	second := &models.Product{ID: 2, Name: "Tote Bag", Price: 8, Stock: 1}
	store := newMemStore(first, second)
	store.sequential = true
	svc, notifier := newTestService(store, stubSettings{})

	req := validRequest()
	req.Items = []LineItemRequest{
		{ProductID: 1, Quantity: 2, Size: "M"},
		{ProductID: 2, Quantity: 2},
	}

	_, err := svc.CreateOrder(context.Background(), req, Actor{})
	var availErr *AvailabilityError
	require.ErrorAs(t, err, &availErr)

	// Without a transaction the first line's reservation is already applied
	// and cannot be rolled back.
	assert.Equal(t, 3, store.products[1].Sizes[1].Stock)
	assert.Empty(t, store.orders)
	assert.Empty(t, notifier.created)
}

func TestCreateOrderMultiLineTotal(t *testing.T) {
	first := shirt()
	second := &models.Product{ID: 2, Name: "Tote Bag", Price: 8, Stock: 10}
	store := newMemStore(first, second)
	svc, _ := newTestService(store, stubSettings{})

	req := validRequest()
	req.Items = []LineItemRequest{
		{ProductID: 1, Quantity: 2, Size: "M"},
		{ProductID: 2, Quantity: 3},
	}

	resp, err := svc.CreateOrder(context.Background(), req, Actor{})
	require.NoError(t, err)
	assert.Equal(t, 44.0, resp.TotalAmount, "2*10 + 3*8")
	assert.Equal(t, 7, store.products[2].Stock)
}
