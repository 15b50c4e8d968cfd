package stem_test

import (
	"context"
	"stem-separator-workers/src/application/separation/stem"
	"stem-separator-workers/src/lib/cerr"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Layout", func() {
	It("orders the stems canonically", func() {
		Expect(stem.NamesOf[stem.TwoStems]()).To(Equal([]stem.Name{stem.Vocals, stem.Accompaniment}))
		Expect(stem.NamesOf[stem.FourStems]()).To(Equal([]stem.Name{stem.Vocals, stem.Drums, stem.Bass, stem.Other}))
		Expect(stem.NamesOf[stem.FiveStems]()).To(Equal([]stem.Name{stem.Vocals, stem.Drums, stem.Bass, stem.Piano, stem.Other}))
	})

	It("knows its arity and split type", func() {
		Expect(stem.CountOf[stem.TwoStems]()).To(Equal(2))
		Expect(stem.CountOf[stem.FiveStems]()).To(Equal(5))
		Expect(stem.SplitTypeOf[stem.FourStems]()).To(Equal("4stems"))
	})
})

var _ = Describe("Stems", func() {
	Describe("Construction", func() {
		It("takes exactly one value per stem", func() {
			s, err := stem.New[stem.TwoStems](1, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Values()).To(Equal([]int{1, 2}))

			_, err = stem.New[stem.TwoStems](1, 2, 3)
			Expect(err).To(HaveOccurred())
		})

		It("builds from a function of the stem name", func() {
			s := stem.FromFunc[stem.FourStems](func(name stem.Name) string { return string(name) + ".wav" })
			Expect(s.Values()).To(Equal([]string{"vocals.wav", "drums.wav", "bass.wav", "other.wav"}))
		})

		It("builds from a map in canonical order", func() {
			s, err := stem.FromMap[stem.TwoStems](map[stem.Name]int{stem.Accompaniment: 2, stem.Vocals: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Values()).To(Equal([]int{1, 2}))
		})

		It("rejects maps with foreign or missing names", func() {
			_, err := stem.FromMap[stem.TwoStems](map[stem.Name]int{stem.Vocals: 1, stem.Drums: 2})
			Expect(err).To(HaveOccurred())

			_, err = stem.FromMap[stem.TwoStems](map[stem.Name]int{stem.Vocals: 1})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Access", func() {
		var s stem.Stems[stem.FourStems, int]

		BeforeEach(func() {
			var err error
			s, err = stem.New[stem.FourStems](1, 2, 3, 4)
			Expect(err).NotTo(HaveOccurred())
		})

		It("looks values up by name", func() {
			value, ok := s.Get(stem.Bass)
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal(3))

			_, ok = s.Get(stem.Piano)
			Expect(ok).To(BeFalse())
		})

		It("hands out copies of its values", func() {
			values := s.Values()
			values[0] = 100
			Expect(s.Values()[0]).To(Equal(1))
		})

		It("converts to a name keyed map", func() {
			Expect(s.ToMap()).To(Equal(map[string]int{"vocals": 1, "drums": 2, "bass": 3, "other": 4}))
			Expect(s.Len()).To(Equal(4))
			Expect(s.Names()).To(Equal(stem.NamesOf[stem.FourStems]()))
		})
	})

	Describe("Map", func() {
		It("transforms every slot in order", func() {
			s, _ := stem.New[stem.TwoStems](1, 2)
			visited := []stem.Name{}

			doubled, err := stem.Map(s, func(name stem.Name, value int) (int, error) {
				visited = append(visited, name)
				return value * 2, nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(doubled.Values()).To(Equal([]int{2, 4}))
			Expect(visited).To(Equal([]stem.Name{stem.Vocals, stem.Accompaniment}))
		})

		It("stops at the first failure", func() {
			s, _ := stem.New[stem.FourStems](1, 2, 3, 4)
			calls := 0

			_, err := stem.Map(s, func(name stem.Name, value int) (int, error) {
				calls++
				if name == stem.Drums {
					return 0, cerr.Error("i failed")
				}
				return value, nil
			})
			Expect(err).To(HaveOccurred())
			Expect(calls).To(Equal(2))
		})

		It("rejects a zero value container", func() {
			_, err := stem.Map(stem.Stems[stem.TwoStems, int]{}, func(_ stem.Name, value int) (int, error) {
				return value, nil
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("AsyncMap", func() {
		It("keeps canonical order whatever the completion order", func() {
			s, _ := stem.New[stem.FiveStems](5, 4, 3, 2, 1)

			result, err := stem.AsyncMap(context.Background(), s, func(_ context.Context, _ stem.Name, value int) (int, error) {
				time.Sleep(time.Duration(value) * 5 * time.Millisecond)
				return value * 10, nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Values()).To(Equal([]int{50, 40, 30, 20, 10}))
		})

		It("cancels the remaining work after a failure", func() {
			s, _ := stem.New[stem.FourStems](1, 2, 3, 4)
			var cancelled int32

			_, err := stem.AsyncMap(context.Background(), s, func(ctx context.Context, name stem.Name, value int) (int, error) {
				if name == stem.Vocals {
					return 0, cerr.Error("i failed")
				}

				select {
				case <-ctx.Done():
					atomic.AddInt32(&cancelled, 1)
					return 0, ctx.Err()
				case <-time.After(5 * time.Second):
					return value, nil
				}
			})
			Expect(err).To(HaveOccurred())
			Expect(atomic.LoadInt32(&cancelled)).To(Equal(int32(3)))
		})
	})
})
