package order

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryStatus string

const (
	DeliveryWaiting   DeliveryStatus = "WAITING"
	DeliveryShipped   DeliveryStatus = "SHIPPED"
	DeliveryCanceled  DeliveryStatus = "CANCELED"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
)

type Delivery struct {
	id                    string
	createDate            time.Time
	estimatedDeliveryDate time.Time
	status                DeliveryStatus
}

// NewDelivery starts in Waiting.
func NewDelivery(createDate, estimatedDeliveryDate time.Time) *Delivery {
	return &Delivery{
		id:                    uuid.New().String(),
		createDate:            createDate,
		estimatedDeliveryDate: estimatedDeliveryDate,
		status:                DeliveryWaiting,
	}
}

// RebuildDelivery restores a stored delivery.
func RebuildDelivery(id string, createDate, estimatedDeliveryDate time.Time, status DeliveryStatus) *Delivery {
	return &Delivery{
		id:                    id,
		createDate:            createDate,
		estimatedDeliveryDate: estimatedDeliveryDate,
		status:                status,
	}
}

func (d *Delivery) Ship() {
	d.status = DeliveryShipped
}

// Cancel leaves a delivered delivery untouched.
func (d *Delivery) Cancel() {
	if d.status != DeliveryDelivered {
		d.status = DeliveryCanceled
	}
}

func (d *Delivery) Deliver() {
	d.status = DeliveryDelivered
}

func (d *Delivery) ID() string                       { return d.id }
func (d *Delivery) CreateDate() time.Time            { return d.createDate }
func (d *Delivery) EstimatedDeliveryDate() time.Time { return d.estimatedDeliveryDate }
func (d *Delivery) Status() DeliveryStatus           { return d.status }
