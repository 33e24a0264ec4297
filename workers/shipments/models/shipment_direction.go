package models

type ShipmentDirection string

const (
	DirectionIncoming ShipmentDirection = "incoming"
	DirectionOutgoing ShipmentDirection = "outgoing"
)

func (d ShipmentDirection) Valid() bool {
	return d == DirectionIncoming || d == DirectionOutgoing
}

// OrDefault treats a missing direction as incoming.
func (d ShipmentDirection) OrDefault() ShipmentDirection {
	if d == "" {
		return DirectionIncoming
	}
	return d
}
