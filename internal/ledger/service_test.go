package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type recordingObserver struct {
	mu    sync.Mutex
	added []ledger.Kind
	saves int
	fails int
}

func (o *recordingObserver) RecordAdded(kind ledger.Kind) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.added = append(o.added, kind)
}

func (o *recordingObserver) SnapshotSaved(_ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.saves++
	if err != nil {
		o.fails++
	}
}

func TestService_Load(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *ledger.MockRepository)
		wantErr   bool
		wantSales int
	}

	stored := uuid.New()

	tests := []testCase{
		{
			name: "Empty store",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().Load(gomock.Any()).Return(&ledger.Snapshot{}, nil)
			},
		},
		{
			name: "Records with ids are not saved back",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().Load(gomock.Any()).Return(&ledger.Snapshot{
					SalesRecords: []ledger.SaleRecord{{ID: stored, ProductName: "Widget"}},
				}, nil)
			},
			wantSales: 1,
		},
		{
			name: "Legacy records get ids and one save",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().Load(gomock.Any()).Return(&ledger.Snapshot{
					SalesRecords:    []ledger.SaleRecord{{ProductName: "Widget"}, {ProductName: "Gadget"}},
					PurchaseRecords: []ledger.PurchaseRecord{{SupplierName: "Acme"}},
				}, nil)
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, snap *ledger.Snapshot) error {
						for _, rec := range snap.SalesRecords {
							assert.NotEqual(t, uuid.Nil, rec.ID)
						}

						assert.NotEqual(t, uuid.Nil, snap.PurchaseRecords[0].ID)
						assert.NotNil(t, snap.SaleReturnRecords)

						return nil
					})
			},
			wantSales: 2,
		},
		{
			name: "Load error",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().Load(gomock.Any()).Return(nil, errors.New("disk error"))
			},
			wantErr: true,
		},
		{
			name: "Saving assigned ids fails",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().Load(gomock.Any()).Return(&ledger.Snapshot{
					SalesRecords: []ledger.SaleRecord{{ProductName: "Widget"}},
				}, nil)
				m.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("read-only"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			err := svc.Load(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, svc.SearchSales(""))

				return
			}

			require.NoError(t, err)
			assert.Len(t, svc.SearchSales(""), tt.wantSales)
		})
	}
}

func TestService_Load_IDsAreStable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var saved *ledger.Snapshot

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(&ledger.Snapshot{
		SalesRecords: []ledger.SaleRecord{{ProductName: "Widget"}},
	}, nil)
	repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snap *ledger.Snapshot) error {
			saved = snap
			return nil
		})

	svc := ledger.NewService(repo)
	require.NoError(t, svc.Load(context.Background()))

	_, rec, err := svc.Sale("0")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, saved.SalesRecords[0].ID, rec.ID)

	i, byID, err := svc.Sale(rec.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, "Widget", byID.ProductName)
}

func TestService_RecordSale(t *testing.T) {
	type testCase struct {
		name      string
		params    ledger.SaleParams
		setupMock func(m *ledger.MockRepository)
		wantErr   error
		wantSales int
	}

	tests := []testCase{
		{
			name:   "Success",
			params: ledger.SaleParams{ProductName: "Widget", Date: "2024-01-15", UnitPrice: "10", Quantity: "3"},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, snap *ledger.Snapshot) error {
						require.Len(t, snap.SalesRecords, 1)
						assertDecimal(t, "30", snap.SalesRecords[0].TotalSale)

						return nil
					})
			},
			wantSales: 1,
		},
		{
			name:      "Invalid input is not saved",
			params:    ledger.SaleParams{ProductName: "Widget", UnitPrice: "ten", Quantity: "3"},
			wantErr:   ledger.ErrInvalidInput,
			wantSales: 0,
		},
		{
			name:   "Save error leaves the book unchanged",
			params: ledger.SaleParams{ProductName: "Widget", UnitPrice: "10", Quantity: "3"},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantSales: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			obs := &recordingObserver{}
			svc := ledger.NewService(repo, ledger.WithObserver(obs))
			before := svc.Fingerprint()

			rec, err := svc.RecordSale(context.Background(), tt.params)

			assert.Len(t, svc.SearchSales(""), tt.wantSales)

			if tt.wantSales == 0 {
				assert.Error(t, err)

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				assert.Nil(t, rec)
				assert.Equal(t, before, svc.Fingerprint())
				assert.Empty(t, obs.added)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, rec)
			assert.NotEqual(t, before, svc.Fingerprint())
			assert.Equal(t, []ledger.Kind{ledger.KindSale}, obs.added)
			assert.Equal(t, 1, obs.saves)
		})
	}
}

func TestService_RecordOtherKinds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	svc := ledger.NewService(repo)
	ctx := context.Background()

	purchase, err := svc.RecordPurchase(ctx, ledger.PurchaseParams{
		SupplierName: " Acme ", ProductName: "Widget", Date: "2024-01-01", UnitPrice: "4", Quantity: "100",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", purchase.SupplierName)
	assertDecimal(t, "400", purchase.TotalPurchase)

	refund, err := svc.RecordSaleReturn(ctx, ledger.SaleReturnParams{
		ProductName: "Widget", Date: "2024-01-09", UnitPrice: "10", Quantity: "5",
	})
	require.NoError(t, err)
	assertDecimal(t, "50", refund.RefundAmount)

	ret, err := svc.RecordPurchaseReturn(ctx, ledger.PurchaseReturnParams{
		SupplierName: "Acme", ProductName: "Widget", Date: "2024-01-04", UnitPrice: "4", Quantity: "3",
	})
	require.NoError(t, err)
	assertDecimal(t, "12", ret.TotalReturn)

	assert.Len(t, svc.SearchPurchases("acme"), 1)
	assert.Len(t, svc.SaleReturns(), 1)
	assert.Len(t, svc.PurchaseReturns(), 1)

	row, err := svc.SupplierLedger("ACME")
	require.NoError(t, err)
	assertDecimal(t, "388", row.Net)

	assertDecimal(t, "102", svc.Inventory()["Widget"].CurrentInventory)

	_, err = svc.RecordPurchaseReturn(ctx, ledger.PurchaseReturnParams{UnitPrice: "", Quantity: "1"})
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
	assert.Len(t, svc.PurchaseReturns(), 1)
}

func TestService_ImportBatch(t *testing.T) {
	valid := []ledger.Entry{
		{Kind: ledger.KindPurchase, SupplierName: "Acme", ProductName: "Widget", Date: "2024-01-01", UnitPrice: "1", Quantity: "100"},
		{Kind: ledger.KindSale, ProductName: "Widget", Date: "2024-01-02", UnitPrice: "2", Quantity: "30"},
	}

	type testCase struct {
		name      string
		entries   []ledger.Entry
		setupMock func(m *ledger.MockRepository)
		wantN     int
		wantErr   bool
	}

	tests := []testCase{
		{
			name:    "All entries in one save",
			entries: valid,
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, snap *ledger.Snapshot) error {
						assert.Len(t, snap.PurchaseRecords, 1)
						assert.Len(t, snap.SalesRecords, 1)

						return nil
					}).
					Times(1)
			},
			wantN: 2,
		},
		{
			name:    "Nothing to import",
			entries: nil,
			wantN:   0,
		},
		{
			name: "One bad entry rejects the batch",
			entries: append(valid[:1:1], ledger.Entry{
				Kind: ledger.KindSale, ProductName: "Widget", UnitPrice: "x", Quantity: "1",
			}),
			wantErr: true,
		},
		{
			name: "Unknown kind rejects the batch",
			entries: []ledger.Entry{
				{Kind: "refund", ProductName: "Widget", UnitPrice: "1", Quantity: "1"},
			},
			wantErr: true,
		},
		{
			name:    "Save error rejects the batch",
			entries: valid,
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			n, err := svc.ImportBatch(context.Background(), tt.entries)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 0, n)
				assert.Empty(t, svc.SearchSales(""))
				assert.Empty(t, svc.SearchPurchases(""))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantN, n)
		})
	}
}

func TestService_ProfitAndCashFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	svc := ledger.NewService(repo)

	_, err := svc.ImportBatch(context.Background(), []ledger.Entry{
		{Kind: ledger.KindSale, ProductName: "Widget", UnitPrice: "10", Quantity: "3"},
		{Kind: ledger.KindPurchase, SupplierName: "Acme", ProductName: "Widget", UnitPrice: "5", Quantity: "2"},
	})
	require.NoError(t, err)

	p, err := svc.Profit("5")
	require.NoError(t, err)
	assertDecimal(t, "15", p.NetProfit)

	p, err = svc.Profit("lots")
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
	assertDecimal(t, "20", p.NetProfit)

	cf, err := svc.CashFlow("100", "")
	require.NoError(t, err)
	assertDecimal(t, "120", cf.ClosingBalance)

	cf, err = svc.CashFlow("100", "abc")
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
	assertDecimal(t, "100", cf.OpeningBalance)
	assertDecimal(t, "120", cf.ClosingBalance)
}

func TestService_ConcurrentRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(20)

	svc := ledger.NewService(repo)

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			_, err := svc.RecordSale(context.Background(), ledger.SaleParams{
				ProductName: "Widget", UnitPrice: "1", Quantity: "1",
			})
			assert.NoError(t, err)
			_ = svc.Inventory()
		})
	}
	wg.Wait()

	assertDecimal(t, "-20", svc.Inventory()["Widget"].CurrentInventory)
	assert.Len(t, svc.SearchSales(""), 20)
}
