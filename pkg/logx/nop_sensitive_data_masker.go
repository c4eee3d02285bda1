package logx

// NopSensitiveDataMasker passes payloads through unchanged. Used where the
// traffic is known to carry no secrets, such as test servers.
type NopSensitiveDataMasker struct{}

func NewNopSensitiveDataMasker() NopSensitiveDataMasker {
	return NopSensitiveDataMasker{}
}

func (NopSensitiveDataMasker) Mask(input []byte) []byte {
	return input
}
