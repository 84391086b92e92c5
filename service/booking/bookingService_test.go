package booking

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"travelease/app/echoServer/validation"
	"travelease/model"
	"travelease/repository/backend"
	"travelease/repository/backend/backendtest"
	orderrepo "travelease/repository/order"
	paymentrepo "travelease/repository/payment"
	profilerepo "travelease/repository/profile"
	"travelease/repository/storage"
	vehiclerepo "travelease/repository/vehicle"
	"travelease/util/eventbus"

	"github.com/stretchr/testify/require"
)

const sid = "sess-1"

type fixture struct {
	fake  *backendtest.Server
	store *storage.Memory
	bus   *eventbus.Bus[model.OrdersUpdated]
	svc   Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithDelay(t, 0)
}

func newFixtureWithDelay(t *testing.T, payDelay time.Duration) *fixture {
	t.Helper()
	fake := backendtest.New()
	t.Cleanup(fake.Close)
	fake.AddVehicle(map[string]any{"id": 1, "name": "Luxury SUV", "type": "SUV", "price": 8500, "available": true, "features": "GPS, Leather Seats,"})
	fake.AddVehicle(map[string]any{"id": "2", "name": "City Hatch", "type": "Hatchback", "price": 1500, "available": false})

	c := backend.New(fake.URL, fake.Client())
	st := storage.NewMemory(0)
	bus := eventbus.New[model.OrdersUpdated](nil)
	svc := New(Deps{
		VehicleRepo: vehiclerepo.New(c),
		OrderRepo:   orderrepo.New(c),
		ProfileRepo: profilerepo.New(c),
		Payments:    paymentrepo.NewSimulator(payDelay),
		Store:       st,
		OrdersBus:   bus,
		Validate:    validation.NewValidate(),
		DeliveryFee: 500,
	})
	return &fixture{fake: fake, store: st, bus: bus, svc: svc}
}

func futureDelivery() model.DeliveryDetails {
	d := validDelivery()
	d.StartDate = time.Now().AddDate(0, 0, 1).Format(dateLayout)
	d.EndDate = time.Now().AddDate(0, 0, 3).Format(dateLayout)
	return d
}

func TestVehicles_SearchAndFallback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	list, err := f.svc.Vehicles(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, []string{"GPS", "Leather Seats"}, list[0].Features)

	list, err = f.svc.Vehicles(ctx, "hatch")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "City Hatch", list[0].Name)

	f.fake.FailNext("GET /api/vehicles", http.StatusInternalServerError)
	list, err = f.svc.Vehicles(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestVehicles_NoCache(t *testing.T) {
	f := newFixture(t)
	f.fake.FailNext("GET /api/vehicles", http.StatusInternalServerError)
	_, err := f.svc.Vehicles(context.Background(), "")
	require.Equal(t, ErrBackend, Code(err))
}

func TestSelectVehicle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.SelectVehicle(ctx, sid, "2")
	require.Equal(t, ErrVehicleUnavailable, Code(err))
	require.Equal(t, MsgUnavailable, Message(err))

	_, err = f.svc.SelectVehicle(ctx, sid, "99")
	require.Equal(t, ErrVehicleNotFound, Code(err))

	require.NoError(t, storage.SetJSON(ctx, f.store, sid, storage.KeyDeliveryDetails, validDelivery()))
	v, err := f.svc.SelectVehicle(ctx, sid, "1")
	require.NoError(t, err)
	require.Equal(t, "Luxury SUV", v.Name)

	d, err := f.svc.Draft(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, d.Vehicle)
	require.Nil(t, d.Delivery)
}

func TestSaveDelivery_RequiresVehicle(t *testing.T) {
	f := newFixture(t)
	err := f.svc.SaveDelivery(context.Background(), sid, "asha", futureDelivery())
	require.Equal(t, ErrNoVehicle, Code(err))
}

func TestSaveDelivery_InvalidWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.SelectVehicle(ctx, sid, "1")
	require.NoError(t, err)

	d := futureDelivery()
	d.Pincode = "12"
	err = f.svc.SaveDelivery(ctx, sid, "asha", d)
	require.Equal(t, MsgPincode, Message(err))

	_, err = f.store.Get(ctx, sid, storage.KeyDeliveryDetails)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProfilePrefill(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.ProfilePrefill(ctx, sid, "asha")
	require.Equal(t, ErrNoVehicle, Code(err))

	_, err = f.svc.SelectVehicle(ctx, sid, "1")
	require.NoError(t, err)

	got, err := f.svc.ProfilePrefill(ctx, sid, "asha")
	require.NoError(t, err)
	require.Equal(t, model.DeliveryDetails{}, *got)

	require.NoError(t, f.svc.SaveDelivery(ctx, sid, "asha", futureDelivery()))

	// a new selection clears the form, so the saved profile is what comes back
	_, err = f.svc.SelectVehicle(ctx, sid, "1")
	require.NoError(t, err)
	got, err = f.svc.ProfilePrefill(ctx, sid, "asha")
	require.NoError(t, err)
	require.Equal(t, "Asha Rao", got.Name)
	require.Equal(t, "560001", got.Pincode)
	require.Empty(t, got.StartDate)
}

func TestPay_EndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var events []model.OrdersUpdated
	unsub := f.bus.Subscribe(func(e model.OrdersUpdated) { events = append(events, e) })
	defer unsub()

	_, err := f.svc.SelectVehicle(ctx, sid, "1")
	require.NoError(t, err)
	require.NoError(t, f.svc.SaveDelivery(ctx, sid, "asha", futureDelivery()))

	q, err := f.svc.Quote(ctx, sid)
	require.NoError(t, err)
	require.Equal(t, 9000.0, q.Total)

	o, err := f.svc.Pay(ctx, sid, model.User{Username: "asha"}, model.PaymentReq{
		Method:         model.PaymentCard,
		CardName:       "Asha Rao",
		CardNumber:     "4111111111111111",
		Expiry:         "12/30",
		CVV:            "123",
		BillingAddress: "12 MG Road",
	})
	require.NoError(t, err)
	require.NotEmpty(t, o.OrderID)
	require.Equal(t, model.StatusBookingConfirmed, o.OrderStatus)

	sent := f.fake.Orders()
	require.Len(t, sent, 1)
	require.Equal(t, 9000.0, sent[0]["paymentAmount"])
	require.Equal(t, "COMPLETED", sent[0]["paymentStatus"])
	require.Equal(t, "Card Payment", sent[0]["paymentMethod"])
	require.Equal(t, "Luxury SUV", sent[0]["vehicleName"])
	require.Equal(t, "12 MG Road, Bengaluru, Karnataka - 560001", sent[0]["address"])

	require.Len(t, events, 1)
	require.Equal(t, o.OrderID, events[0].OrderID)

	d, err := f.svc.Draft(ctx, sid)
	require.NoError(t, err)
	require.Nil(t, d.Vehicle)
	require.Nil(t, d.Delivery)
}

func TestPay_BadDetailsKeepsDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.SelectVehicle(ctx, sid, "1")
	require.NoError(t, err)
	require.NoError(t, f.svc.SaveDelivery(ctx, sid, "asha", futureDelivery()))

	_, err = f.svc.Pay(ctx, sid, model.User{Username: "asha"}, model.PaymentReq{Method: model.PaymentUPI})
	require.Equal(t, MsgUPIDetails, Message(err))

	_, err = f.svc.Pay(ctx, sid, model.User{Username: "asha"}, model.PaymentReq{Method: model.PaymentCard, CardName: "x"})
	require.Equal(t, MsgCardDetails, Message(err))

	f.fake.FailNext("POST /api/orders", http.StatusInternalServerError)
	_, err = f.svc.Pay(ctx, sid, model.User{Username: "asha"}, model.PaymentReq{Method: model.PaymentUPI, UPIID: "asha@upi"})
	require.Equal(t, ErrBackend, Code(err))

	d, err := f.svc.Draft(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, d.Vehicle)
	require.NotNil(t, d.Delivery)
	require.Empty(t, f.fake.Orders())
}

func TestPay_WithoutDraft(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Pay(context.Background(), sid, model.User{Username: "asha"}, model.PaymentReq{Method: model.PaymentUPI, ScannedQR: true})
	require.Equal(t, ErrNoVehicle, Code(err))
}

func TestPay_DoubleSubmitCreatesOneOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixtureWithDelay(t, 200*time.Millisecond)
	_, err := f.svc.SelectVehicle(ctx, sid, "1")
	require.NoError(t, err)
	require.NoError(t, f.svc.SaveDelivery(ctx, sid, "asha", futureDelivery()))

	var (
		wg     sync.WaitGroup
		orders [2]*model.Order
		errs   [2]error
	)
	start := make(chan struct{})
	for i := range orders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			orders[i], errs[i] = f.svc.Pay(ctx, sid, model.User{Username: "asha"}, model.PaymentReq{Method: model.PaymentUPI, UPIID: "asha@upi"})
		}(i)
	}
	close(start)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	require.Equal(t, orders[0].OrderID, orders[1].OrderID)
	require.Len(t, f.fake.Orders(), 1)

	_, err = f.svc.Pay(ctx, sid, model.User{Username: "asha"}, model.PaymentReq{Method: model.PaymentUPI, UPIID: "asha@upi"})
	require.Equal(t, ErrNoVehicle, Code(err))
	require.Len(t, f.fake.Orders(), 1)
}
