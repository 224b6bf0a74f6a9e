package checkout

// State names the phase a checkout execution is in. Transitions are linear;
// any phase can move to StateFailed, and a failure rolls back every write.
type State string

const (
	StateIdle                 State = "idle"
	StateValidating           State = "validating"
	StatePersisting           State = "persisting"
	StateCommissionResolution State = "commission_resolution"
	StateStockReduction       State = "stock_reduction"
	StateCompleted            State = "completed"
	StateFailed               State = "failed"
)
