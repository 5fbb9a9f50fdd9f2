package spectrum

import "testing"

func BenchmarkPowerAt(b *testing.B) {
	data := sine(120, 2000)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = PowerAt(data, 120)
	}
}

func BenchmarkBand(b *testing.B) {
	data := sine(120, 2000)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = Band(data, 30, 200)
	}
}

func BenchmarkBandParallel(b *testing.B) {
	data := sine(120, 2000)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = Band(data, 30, 200, WithWorkers(8))
	}
}

func BenchmarkGoertzelBand(b *testing.B) {
	data := sine(120, 2000)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = GoertzelBand(data, 30, 200, 1)
	}
}

func BenchmarkProcess(b *testing.B) {
	data := sine(120, 2000)

	raw, err := Band(data, 30, 200)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		Process(raw.Clone())
	}
}
