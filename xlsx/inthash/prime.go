package inthash

// NextPrime returns the smallest prime >= n, and never less than 5.
func NextPrime(n int) int {
	if n <= minCapacity {
		return minCapacity
	}
	if n%2 == 0 {
		n++
	}
	for !isPrime(n) {
		n += 2
	}
	return n
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}
