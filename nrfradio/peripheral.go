// Package nrfradio implements the IEEE 802.15.4 driver state machine: CCA-gated and
// unconditional transmit, receive with hardware CRC validation, and the nRF52840 RADIO
// state machine (Disabled / RxIdle / TxIdle) that every operation threads through.
//
// The driver is written against the Peripheral interface rather than a concrete register
// block, so the same state machine runs unchanged against the real RADIO peripheral (a
// future build-tagged implementation, out of scope here) or against package simradio for
// hosted development and tests. This mirrors the way periph.io's conn.Conn/spi.Conn
// interfaces let a driver run against either real silicon or a host-side simulation.
package nrfradio

import (
	"context"

	"github.com/korken89/crkbd-shockburst/packet"
)

// Event names one of the RADIO events the driver waits on.
type Event int

const (
	EventEnd Event = iota
	EventPhyEnd
	EventCcaBusy
)

// State is the subset of the peripheral's hardware state machine the driver reasons
// about. Every method of Driver leaves the peripheral in one of these three states.
type State int

const (
	StateDisabled State = iota
	StateRxIdle
	StateTxIdle
)

func (s State) String() string {
	switch s {
	case StateDisabled:
		return "disabled"
	case StateRxIdle:
		return "rx_idle"
	case StateTxIdle:
		return "tx_idle"
	default:
		return "unknown"
	}
}

// CcaMode selects the Clear Channel Assessment method.
type CcaMode int

const (
	CcaCarrierSense CcaMode = iota
	CcaEnergyDetection
)

// Cca configures Clear Channel Assessment. EDThreshold only applies to CcaEnergyDetection:
// measurements at or above it mean the channel is assumed busy.
type Cca struct {
	Mode        CcaMode
	EDThreshold uint8
}

// DefaultCca is carrier-sense CCA, the default used at Init.
var DefaultCca = Cca{Mode: CcaCarrierSense}

// TxPower is the transmit power level, in dBm.
type TxPower int8

const (
	TxPowerPos8dBm  TxPower = 8
	TxPowerPos7dBm  TxPower = 7
	TxPowerPos6dBm  TxPower = 6
	TxPowerPos5dBm  TxPower = 5
	TxPowerPos4dBm  TxPower = 4
	TxPowerPos3dBm  TxPower = 3
	TxPowerPos2dBm  TxPower = 2
	TxPower0dBm     TxPower = 0
	TxPowerNeg4dBm  TxPower = -4
	TxPowerNeg8dBm  TxPower = -8
	TxPowerNeg12dBm TxPower = -12
	TxPowerNeg16dBm TxPower = -16
	TxPowerNeg20dBm TxPower = -20
	TxPowerNeg40dBm TxPower = -40
)

// DefaultChannel is channel 11 (2405 MHz), the default used at Init.
const DefaultChannel uint8 = 5

// DefaultSFD is the IEEE-compliant Start of Frame Delimiter.
const DefaultSFD uint8 = 0xA7

// DefaultTxPower is 0 dBm, the default used at Init.
const DefaultTxPower = TxPower0dBm

// Shorts is the bitmask of hardware shortcuts the driver enables for a given operation:
// READY->START, CCAIDLE->TXEN, ADDRESS->RSSISTART, DISABLED->RSSISTOP, END->DISABLE.
type Shorts uint32

const (
	ShortCcaIdleTxEn       Shorts = 1 << iota // channel idle starts TX automatically
	ShortTxReadyStart                         // TX ramp-up complete starts the DMA transfer
	ShortEndDisable                           // END event disables the radio
	ShortAddressRssiStart                     // ADDRESS event starts an RSSI sample
	ShortDisabledRssiStop                     // DISABLED event stops the RSSI sample
)

// Peripheral is the hardware contract a Driver drives: the RADIO block's channel/CCA/SFD/
// power configuration, its task triggers, its state register, its DMA packet pointer, and
// its event-wait primitive (spec.md §6).
//
// WaitEvent replaces the interrupt-enable/clear/poll_fn dance the bare-metal driver uses:
// it blocks the calling goroutine until ev fires or ctx is done, which is the idiomatic Go
// shape of the same suspension point.
type Peripheral interface {
	SetChannel(ch uint8)
	SetCCA(c Cca)
	SetSFD(sfd uint8)
	SetTXPower(p TxPower)

	// State returns the peripheral's current stable state. It must only be called when
	// the peripheral is in one of Disabled, RxIdle, or TxIdle (the driver guarantees
	// this by waiting out transient ramp states itself).
	State() State

	SetShorts(s Shorts)
	SetPacketPtr(p *packet.Packet)

	TasksDisable()
	TasksRxEn()
	TasksTxEn()
	TasksStart()
	TasksStop()
	TasksCcaStart()
	TasksCcaStop()

	// WaitEvent blocks until ev occurs or ctx is cancelled. On success it clears the
	// event and returns nil.
	WaitEvent(ctx context.Context, ev Event) error

	// AddressTimestamp returns the free-running 32-bit capture register latched when the
	// most recent frame's address field crossed the air.
	AddressTimestamp() uint32
	RSSISample() int8
	CRCStatus() bool
	RxCRC() uint16
}
