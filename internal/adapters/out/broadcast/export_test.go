package broadcast

// DropConnection closes the broker connection the way a network failure would,
// leaving the bus open.
func (b *AMQPBus) DropConnection() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn.Close()
}
