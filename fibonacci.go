package memobench

import (
	"fmt"
	"math/big"

	lru "github.com/PascalMinder/memobench/lrucache"
	"github.com/PascalMinder/memobench/splaytree"
)

// Fibonacci computes F(n) by iteration without any memo.
func Fibonacci(n int) (*big.Int, error) {
	if err := checkFibonacci(n); err != nil {
		return nil, err
	}
	return fibonacci(n), nil
}

// FibonacciLRU returns F(n), consulting cache first and storing a computed
// value before returning it. The returned value is shared with the cache and
// must not be modified.
func FibonacciLRU(n int, cache *lru.LRUCache[int, *big.Int]) (*big.Int, error) {
	if err := checkFibonacci(n); err != nil {
		return nil, err
	}

	if v, ok := cache.Get(n); ok {
		return v, nil
	}

	v := fibonacci(n)
	cache.Put(n, v)
	return v, nil
}

// FibonacciSplay returns F(n) using tree as the memo. A missing value is
// built from F(n-1) and F(n-2), which are themselves looked up in and
// stored into the tree. The returned value is shared with the tree and must
// not be modified.
func FibonacciSplay(n int, tree *splaytree.SplayTree[int, *big.Int]) (*big.Int, error) {
	if err := checkFibonacci(n); err != nil {
		return nil, err
	}
	return fibonacciSplay(n, tree), nil
}

func fibonacciSplay(n int, tree *splaytree.SplayTree[int, *big.Int]) *big.Int {
	if v, ok := tree.Search(n); ok {
		return v
	}

	var v *big.Int
	if n < 2 {
		v = big.NewInt(int64(n))
	} else {
		v = new(big.Int).Add(fibonacciSplay(n-1, tree), fibonacciSplay(n-2, tree))
	}

	tree.Insert(n, v)
	return v
}

func fibonacci(n int) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := 0; i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

func checkFibonacci(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: fibonacci index %d is negative", ErrDomain, n)
	}
	return nil
}
