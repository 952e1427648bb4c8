package kernel

// Context is the handle a task uses to reach the kernel. Each task gets its
// own from AddTask.
type Context struct {
	k      *Kernel
	taskID TaskID
}

func (c *Context) TaskID() TaskID { return c.taskID }

// RecvChan exposes the mailbox behind a receive capability so tasks can
// select on it alongside their own channels.
func (c *Context) RecvChan(epCap Capability) (<-chan Message, bool) {
	if c.k == nil || !epCap.valid() || !epCap.canRecv() {
		return nil, false
	}
	if ch := c.k.recvChan(epCap.ep); ch != nil {
		return ch, true
	}
	return nil, false
}

// Recv waits for the next message. ok is false once the endpoint is closed.
func (c *Context) Recv(epCap Capability) (msg Message, ok bool) {
	ch, ok := c.RecvChan(epCap)
	if !ok {
		return Message{}, false
	}
	msg, ok = <-ch
	return msg, ok
}

// TryRecv is Recv without waiting.
func (c *Context) TryRecv(epCap Capability) (msg Message, ok bool) {
	ch, ok := c.RecvChan(epCap)
	if !ok {
		return Message{}, false
	}
	select {
	case msg, ok = <-ch:
		return msg, ok
	default:
		return Message{}, false
	}
}

// BlockOnTick parks the task until the tick after the current one.
func (c *Context) BlockOnTick() {
	if c.k != nil {
		c.k.waitTick(c.k.nowTick())
	}
}

// SendCapResult sends from the endpoint behind fromCap, so the receiver sees
// it in Message.From. xfer, when valid, rides along in Message.Cap.
func (c *Context) SendCapResult(fromCap, toCap Capability, kind uint16, payload []byte, xfer Capability) SendResult {
	switch {
	case !fromCap.valid():
		return SendErrInvalidFromCap
	case !fromCap.canSend():
		return SendErrFromNoSendRight
	}
	if res := checkTarget(toCap); res != SendOK {
		return res
	}
	return c.k.send(fromCap.ep, toCap.ep, kind, payload, xfer)
}

// SendToCapResult sends anonymously: Message.From is zero. Services use it
// to answer on the reply capability a request carried.
func (c *Context) SendToCapResult(toCap Capability, kind uint16, payload []byte, xfer Capability) SendResult {
	if res := checkTarget(toCap); res != SendOK {
		return res
	}
	return c.k.send(0, toCap.ep, kind, payload, xfer)
}

// SendToCapRetry repeats SendToCapResult once per tick while the target
// mailbox is full, at most limit more times.
func (c *Context) SendToCapRetry(toCap Capability, kind uint16, payload []byte, xfer Capability, limit int) SendResult {
	res := c.SendToCapResult(toCap, kind, payload, xfer)
	for tries := 0; res == SendErrQueueFull && tries < limit; tries++ {
		c.BlockOnTick()
		res = c.SendToCapResult(toCap, kind, payload, xfer)
	}
	return res
}

func checkTarget(toCap Capability) SendResult {
	if !toCap.valid() {
		return SendErrInvalidToCap
	}
	if !toCap.canSend() {
		return SendErrToNoSendRight
	}
	return SendOK
}

func (c *Context) NewEndpoint(rights Rights) Capability {
	if c.k == nil {
		return Capability{}
	}
	return c.k.NewEndpoint(rights)
}

// NowTick is the latest tick the kernel has published.
func (c *Context) NowTick() uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.nowTick()
}

// WaitTick blocks until the tick moves beyond after, then returns it.
func (c *Context) WaitTick(after uint64) uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.waitTick(after)
}

// Ticks forwards each new kernel tick on the returned channel until done is
// closed. The starting tick is read before Ticks returns, so a TickTo made
// right after the call is always delivered. Ticks arriving while the reader
// is busy are coalesced.
func (c *Context) Ticks(done <-chan struct{}) <-chan uint64 {
	ch := make(chan uint64, 16)
	last := c.NowTick()
	go func() {
		for {
			last = c.WaitTick(last)
			select {
			case <-done:
				return
			case ch <- last:
			default:
			}
		}
	}()
	return ch
}
