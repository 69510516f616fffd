package search

// seedAlphabet is the 36-character set seeds are drawn from
// ("AAAAAAAA".."AAAAAAAH"): uppercase letters and digits.
const seedAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SeedLength is the fixed width of a seed identifier.
const SeedLength = 8

// EnumerateSeeds returns the [start, end) range of the seed space as
// literal 8-character strings, in ascending index order.
func EnumerateSeeds(start, end uint64) []string {
	if end < start {
		return nil
	}
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, seedAt(i))
	}
	return out
}

func seedAt(index uint64) string {
	base := uint64(len(seedAlphabet))
	var buf [SeedLength]byte
	for i := SeedLength - 1; i >= 0; i-- {
		buf[i] = seedAlphabet[index%base]
		index /= base
	}
	return string(buf[:])
}
