package kernel

import "sync"

const (
	maxTasks     = 32
	maxEndpoints = 32
	mailboxSlots = 8
)

type TaskID uint8

// MaxMessageBytes is the maximum payload size for IPC messages.
//
// It is sized so a full app message dictionary (timestamp plus three
// pipe-joined sensor strings) travels in one envelope.
const MaxMessageBytes = 512

// Message is a fixed-size IPC envelope.
type Message struct {
	From Endpoint
	To   Endpoint
	Kind uint16
	Len  uint16
	Data [MaxMessageBytes]byte
	Cap  Capability
}

// Payload returns the valid portion of Data.
func (m *Message) Payload() []byte {
	n := int(m.Len)
	if n > len(m.Data) {
		n = len(m.Data)
	}
	return m.Data[:n]
}

// SendResult describes the outcome of a send attempt.
type SendResult uint8

const (
	SendOK SendResult = iota
	SendErrInvalidFromCap
	SendErrInvalidToCap
	SendErrFromNoSendRight
	SendErrToNoSendRight
	SendErrNoEndpoint
	SendErrPayloadTooLarge
	SendErrQueueFull
)

var sendResultText = [...]string{
	SendOK:                 "ok",
	SendErrInvalidFromCap:  "invalid from capability",
	SendErrInvalidToCap:    "invalid to capability",
	SendErrFromNoSendRight: "from capability has no send right",
	SendErrToNoSendRight:   "to capability has no send right",
	SendErrNoEndpoint:      "no such endpoint",
	SendErrPayloadTooLarge: "payload too large",
	SendErrQueueFull:       "queue full",
}

func (r SendResult) String() string {
	if int(r) < len(sendResultText) {
		return sendResultText[r]
	}
	return "unknown"
}

// Task is a unit of execution. Each task runs on its own goroutine and
// communicates with the rest of the system only through its Context.
type Task interface {
	Run(*Context)
}

type endpointState struct {
	ch     chan Message
	closed bool
}

// Kernel routes IPC messages between tasks and distributes the system tick.
type Kernel struct {
	mu sync.Mutex

	endpoints     [maxEndpoints]endpointState
	endpointCount Endpoint

	taskCount TaskID

	tick     uint64
	tickWake chan struct{}
}

func New() *Kernel {
	return &Kernel{tickWake: make(chan struct{})}
}

// NewEndpoint allocates a mailbox of mailboxSlots messages. It returns the
// zero Capability once maxEndpoints are in use.
func (k *Kernel) NewEndpoint(rights Rights) Capability {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.endpointCount >= maxEndpoints {
		return Capability{}
	}
	ep := k.endpointCount
	k.endpointCount++
	k.endpoints[ep] = endpointState{ch: make(chan Message, mailboxSlots)}
	return Capability{ep: ep, rights: rights}
}

// AddTask starts t on its own goroutine. A panic in t freezes the system
// through the panic handler; tasks are never restarted.
func (k *Kernel) AddTask(t Task) TaskID {
	k.mu.Lock()
	if k.taskCount >= maxTasks {
		k.mu.Unlock()
		return 0
	}
	id := k.taskCount
	k.taskCount++
	k.mu.Unlock()

	ctx := &Context{k: k, taskID: id}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				triggerPanic(PanicInfo{TaskID: id, Value: r})
			}
		}()
		t.Run(ctx)
	}()
	return id
}

// TickTo advances the kernel tick to seq and wakes tasks waiting on it.
// Values at or below the current tick are ignored.
func (k *Kernel) TickTo(seq uint64) {
	k.mu.Lock()
	if seq <= k.tick {
		k.mu.Unlock()
		return
	}
	k.tick = seq
	wake := k.tickWake
	k.tickWake = make(chan struct{})
	k.mu.Unlock()
	close(wake)
}

func (k *Kernel) nowTick() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.tick
}

func (k *Kernel) waitTick(after uint64) uint64 {
	for {
		k.mu.Lock()
		now := k.tick
		wake := k.tickWake
		k.mu.Unlock()
		if now > after {
			return now
		}
		<-wake
	}
}

// send enqueues without blocking. A full mailbox is reported, not waited on.
func (k *Kernel) send(from, to Endpoint, kind uint16, payload []byte, xfer Capability) SendResult {
	if len(payload) > MaxMessageBytes {
		return SendErrPayloadTooLarge
	}
	msg := Message{From: from, To: to, Kind: kind, Len: uint16(len(payload)), Cap: xfer}
	copy(msg.Data[:], payload)

	k.mu.Lock()
	defer k.mu.Unlock()
	box := k.mailbox(to)
	if box == nil || box.closed {
		return SendErrNoEndpoint
	}
	select {
	case box.ch <- msg:
		return SendOK
	default:
		return SendErrQueueFull
	}
}

// mailbox returns the state for ep, or nil if it was never allocated.
// k.mu must be held.
func (k *Kernel) mailbox(ep Endpoint) *endpointState {
	if ep >= k.endpointCount || k.endpoints[ep].ch == nil {
		return nil
	}
	return &k.endpoints[ep]
}

func (k *Kernel) recvChan(ep Endpoint) chan Message {
	k.mu.Lock()
	defer k.mu.Unlock()
	if box := k.mailbox(ep); box != nil {
		return box.ch
	}
	return nil
}

// CloseEndpoint shuts the mailbox behind epCap. Queued messages can still be
// read; later sends get SendErrNoEndpoint.
func (k *Kernel) CloseEndpoint(epCap Capability) {
	if !epCap.valid() {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if box := k.mailbox(epCap.ep); box != nil && !box.closed {
		box.closed = true
		close(box.ch)
	}
}
