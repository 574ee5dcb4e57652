package algo

// Depth is not released on panic: an aborted execution is discarded by
// Registry.Execute.

func linearSearch(a []int, target int) int {
	for i := range a {
		if a[i] == target {
			return i
		}
	}
	return -1
}

func binarySearch(a []int, target int) int {
	left, right := 0, len(a)-1
	for left <= right {
		mid := left + (right-left)/2
		switch {
		case a[mid] == target:
			return mid
		case a[mid] < target:
			left = mid + 1
		default:
			right = mid - 1
		}
	}
	return -1
}

// bubbleSort sorts a in place and returns the number of swaps performed.
func bubbleSort(a []int) int {
	swaps := 0
	for i := 0; i < len(a)-1; i++ {
		for j := 0; j < len(a)-i-1; j++ {
			if a[j] > a[j+1] {
				a[j], a[j+1] = a[j+1], a[j]
				swaps++
			}
		}
	}
	return swaps
}

func (x *execution) mergeSort(a []int) {
	if len(a) <= 1 {
		return
	}
	x.enter()

	mid := len(a) / 2
	left := append([]int(nil), a[:mid]...)
	right := append([]int(nil), a[mid:]...)

	x.mergeSort(left)
	x.mergeSort(right)

	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if left[i] < right[j] {
			a[k] = left[i]
			i++
		} else {
			a[k] = right[j]
			j++
		}
		k++
	}
	k += copy(a[k:], left[i:])
	copy(a[k:], right[j:])
	x.leave()
}

func (x *execution) quickSort(a []int, low, high int) {
	if low >= high {
		return
	}
	x.enter()
	p := partition(a, low, high)
	x.quickSort(a, low, p-1)
	x.quickSort(a, p+1, high)
	x.leave()
}

// partition is the Lomuto scheme with the last element as pivot.
func partition(a []int, low, high int) int {
	pivot := a[high]
	i := low - 1
	for j := low; j < high; j++ {
		if a[j] < pivot {
			i++
			a[i], a[j] = a[j], a[i]
		}
	}
	a[i+1], a[high] = a[high], a[i+1]
	return i + 1
}

func (x *execution) fibonacci(n int) int {
	if n <= 1 {
		return n
	}
	x.enter()
	f := x.fibonacci(n-1) + x.fibonacci(n-2)
	x.leave()
	return f
}
