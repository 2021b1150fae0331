package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"laundryhub/internal/domain"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type orderModel struct {
	ID               int64           `gorm:"column:id;primaryKey"`
	OrderNumber      string          `gorm:"column:order_number;uniqueIndex;size:20"`
	CustomerID       int64           `gorm:"column:customer_id;index"`
	ServiceTypeID    int64           `gorm:"column:service_type_id;index"`
	DeliveryType     string          `gorm:"column:delivery_type;size:10"`
	Status           string          `gorm:"column:status;size:20;index"`
	Subtotal         decimal.Decimal `gorm:"column:subtotal;type:decimal(10,2)"`
	DeliveryFee      decimal.Decimal `gorm:"column:delivery_fee;type:decimal(10,2)"`
	TotalAmount      decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2)"`
	AssignedWasherID *int64          `gorm:"column:assigned_washer_id;index"`
	AssignedIronerID *int64          `gorm:"column:assigned_ironer_id;index"`
	Notes            string          `gorm:"column:notes"`
	CreatedAt        time.Time       `gorm:"column:created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at"`
}

func (orderModel) TableName() string { return "orders" }

type orderItemModel struct {
	ID            int64           `gorm:"column:id;primaryKey"`
	OrderID       int64           `gorm:"column:order_id;index"`
	GarmentTypeID int64           `gorm:"column:garment_type_id;index"`
	Quantity      int             `gorm:"column:quantity"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2)"`
	TotalPrice    decimal.Decimal `gorm:"column:total_price;type:decimal(10,2)"`
}

func (orderItemModel) TableName() string { return "order_items" }

func toDomainOrder(m orderModel) *domain.Order {
	return &domain.Order{
		ID:             m.ID,
		OrderNumber:    m.OrderNumber,
		CustomerID:     m.CustomerID,
		ServiceTypeID:  m.ServiceTypeID,
		DeliveryType:   domain.DeliveryType(m.DeliveryType),
		Status:         domain.OrderStatus(m.Status),
		Subtotal:       m.Subtotal,
		DeliveryFee:    m.DeliveryFee,
		TotalAmount:    m.TotalAmount,
		AssignedWasher: m.AssignedWasherID,
		AssignedIroner: m.AssignedIronerID,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toOrderModel(o *domain.Order) orderModel {
	return orderModel{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		CustomerID:       o.CustomerID,
		ServiceTypeID:    o.ServiceTypeID,
		DeliveryType:     string(o.DeliveryType),
		Status:           string(o.Status),
		Subtotal:         o.Subtotal,
		DeliveryFee:      o.DeliveryFee,
		TotalAmount:      o.TotalAmount,
		AssignedWasherID: o.AssignedWasher,
		AssignedIronerID: o.AssignedIroner,
		Notes:            o.Notes,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func toDomainOrderItem(m orderItemModel) domain.OrderItem {
	return domain.OrderItem{
		ID:            m.ID,
		OrderID:       m.OrderID,
		GarmentTypeID: m.GarmentTypeID,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		TotalPrice:    m.TotalPrice,
	}
}

func toOrderItemModel(it *domain.OrderItem) orderItemModel {
	return orderItemModel{
		ID:            it.ID,
		OrderID:       it.OrderID,
		GarmentTypeID: it.GarmentTypeID,
		Quantity:      it.Quantity,
		UnitPrice:     it.UnitPrice,
		TotalPrice:    it.TotalPrice,
	}
}

// CreateWithInvoice persists the whole aggregate, the order with its
// items and its invoice, in one transaction. Numbers and totals are already
// computed by the caller.
func (r *OrderRepository) CreateWithInvoice(ctx context.Context, o *domain.Order, items []domain.OrderItem, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		om := toOrderModel(o)
		if err := tx.Create(&om).Error; err != nil {
			return err
		}
		*o = *toDomainOrder(om)

		for i := range items {
			items[i].OrderID = om.ID
			im := toOrderItemModel(&items[i])
			if err := tx.Create(&im).Error; err != nil {
				return err
			}
			items[i] = toDomainOrderItem(im)
		}

		inv.OrderID = om.ID
		ivm := toInvoiceModel(inv)
		if err := tx.Create(&ivm).Error; err != nil {
			return err
		}
		*inv = *toDomainInvoice(ivm)
		return nil
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var m orderModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainOrder(m), nil
}

func (r *OrderRepository) ListItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	var ms []orderItemModel
	tx := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.OrderItem, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainOrderItem(m))
	}
	return out, nil
}

func (r *OrderRepository) GetItem(ctx context.Context, orderID, itemID int64) (*domain.OrderItem, error) {
	var m orderItemModel
	tx := r.db.WithContext(ctx).Where("id = ? AND order_id = ?", itemID, orderID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	it := toDomainOrderItem(m)
	return &it, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	var ms []orderModel
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Order, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainOrder(m))
	}
	return out, nil
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	var ms []orderModel
	tx := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("created_at DESC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Order, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainOrder(m))
	}
	return out, nil
}

// AddItem inserts the item and synchronously recomputes the order totals
// and the invoice ledger within the same transaction.
func (r *OrderRepository) AddItem(ctx context.Context, it *domain.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toOrderItemModel(it)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*it = toDomainOrderItem(m)
		return recomputeOrderDerived(tx, it.OrderID)
	})
}

func (r *OrderRepository) UpdateItem(ctx context.Context, it *domain.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&orderItemModel{}).
			Where("id = ? AND order_id = ?", it.ID, it.OrderID).
			Updates(map[string]any{
				"garment_type_id": it.GarmentTypeID,
				"quantity":        it.Quantity,
				"unit_price":      it.UnitPrice,
				"total_price":     it.TotalPrice,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return recomputeOrderDerived(tx, it.OrderID)
	})
}

func (r *OrderRepository) RemoveItem(ctx context.Context, orderID, itemID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND order_id = ?", itemID, orderID).Delete(&orderItemModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return recomputeOrderDerived(tx, orderID)
	})
}

// recomputeOrderDerived rebuilds an order's money fields from its item
// set and then refreshes the invoice projection, so the aggregate never
// leaves the transaction in a half-derived state. The invoice row is
// locked before any derived field is rewritten; the payment pipeline
// takes the same lock in the same order, so concurrent item mutations
// and payment writes on one aggregate serialize instead of overwriting
// each other's amount_paid and payment_status.
func recomputeOrderDerived(tx *gorm.DB, orderID int64) error {
	var om orderModel
	if err := tx.First(&om, orderID).Error; err != nil {
		return err
	}

	var ivm invoiceModel
	hasInvoice := true
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ?", orderID).First(&ivm).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		hasInvoice = false
	}

	var ims []orderItemModel
	if err := tx.Where("order_id = ?", orderID).Find(&ims).Error; err != nil {
		return err
	}

	o := toDomainOrder(om)
	items := make([]domain.OrderItem, 0, len(ims))
	for _, im := range ims {
		items = append(items, toDomainOrderItem(im))
	}
	o.RecomputeTotals(items)

	if err := tx.Model(&orderModel{}).Where("id = ?", orderID).
		Updates(map[string]any{
			"subtotal":     o.Subtotal,
			"delivery_fee": o.DeliveryFee,
			"total_amount": o.TotalAmount,
			"updated_at":   time.Now().UTC(),
		}).Error; err != nil {
		return err
	}

	// the invoice balance is derived from the order total, so it moves
	// with it
	if !hasInvoice {
		return nil
	}
	return recomputeInvoiceDerived(tx, &ivm, o.TotalAmount)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error) {
	res := r.db.WithContext(ctx).Model(&orderModel{}).
		Where("id = ?", orderID).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, orderID)
}

// UpdateAssignment writes one staff slot; nil clears it.
func (r *OrderRepository) UpdateAssignment(ctx context.Context, orderID int64, role domain.StaffRole, staffID *int64) error {
	column := "assigned_washer_id"
	if role == domain.RoleIroner {
		column = "assigned_ironer_id"
	}
	res := r.db.WithContext(ctx).Model(&orderModel{}).
		Where("id = ?", orderID).
		Updates(map[string]any{column: staffID, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type OrderStats struct {
	TotalOrders      int64           `json:"total_orders"`
	PendingOrders    int64           `json:"pending_orders"`
	ProcessingOrders int64           `json:"processing_orders"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
}

func (r *OrderRepository) Statistics(ctx context.Context) (*OrderStats, error) {
	var stats OrderStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&orderModel{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&orderModel{}).Where("status = ?", string(domain.OrderPending)).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&orderModel{}).Where("status = ?", string(domain.OrderProcessing)).
		Count(&stats.ProcessingOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&orderModel{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteOrderCascade(tx, id)
	})
}

// deleteOrderCascade removes an order together with everything it owns:
// items, invoice, payments and receipts.
func deleteOrderCascade(tx *gorm.DB, orderID int64) error {
	var ivm invoiceModel
	err := tx.Where("order_id = ?", orderID).First(&ivm).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if err == nil {
		var paymentIDs []int64
		if err := tx.Model(&paymentModel{}).Where("invoice_id = ?", ivm.ID).
			Pluck("id", &paymentIDs).Error; err != nil {
			return err
		}
		if len(paymentIDs) > 0 {
			if err := tx.Where("payment_id IN ?", paymentIDs).Delete(&receiptModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("invoice_id = ?", ivm.ID).Delete(&paymentModel{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&invoiceModel{}, ivm.ID).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("order_id = ?", orderID).Delete(&orderItemModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", orderID).Delete(&feedbackModel{}).Error; err != nil {
		return err
	}

	res := tx.Delete(&orderModel{}, orderID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
