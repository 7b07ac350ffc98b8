package validation

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kinetiqd/kinetic-workload-allocator/pkg/core"
)

func wl(name string, current, max, km float64) core.Workload {
	return core.Workload{Name: name, CurrentLoad: current, MaxLoad: max, Km: km}
}

var _ = Describe("Validate", func() {
	var opts Options

	BeforeEach(func() {
		opts = DefaultOptions()
	})

	Context("with an empty list", func() {
		It("should fail with ErrNoWorkloads", func() {
			_, err := Validate(nil, opts)
			Expect(err).To(MatchError(ErrNoWorkloads))

			_, err = Validate([]core.Workload{}, opts)
			Expect(err).To(MatchError(ErrNoWorkloads))
		})
	})

	Context("with malformed records", func() {
		It("should reject a missing name", func() {
			_, err := Validate([]core.Workload{wl("", 1, 5, 1)}, opts)
			var schemaErr *SchemaError
			Expect(errors.As(err, &schemaErr)).To(BeTrue())
			Expect(schemaErr.Field).To(Equal("name"))
			Expect(schemaErr.Index).To(Equal(0))
		})

		It("should reject duplicate names", func() {
			_, err := Validate([]core.Workload{
				wl("api", 1, 5, 1),
				wl("api", 2, 4, 0.5),
			}, opts)
			var schemaErr *SchemaError
			Expect(errors.As(err, &schemaErr)).To(BeTrue())
			Expect(schemaErr.Workload).To(Equal("api"))
			Expect(schemaErr.Reason).To(ContainSubstring("not unique"))
		})

		It("should reject non-finite fields", func() {
			for _, w := range []core.Workload{
				wl("nan-load", math.NaN(), 5, 1),
				wl("inf-max", 1, math.Inf(1), 1),
				wl("nan-km", 1, 5, math.NaN()),
			} {
				_, err := Validate([]core.Workload{w}, opts)
				var schemaErr *SchemaError
				Expect(errors.As(err, &schemaErr)).To(BeTrue(), "workload %s", w.Name)
				Expect(schemaErr.Workload).To(Equal(w.Name))
			}
		})
	})

	Context("with inconsistent values", func() {
		It("should reject a zero max_load and name the workload", func() {
			_, err := Validate([]core.Workload{
				wl("ok", 1, 5, 1),
				wl("doomed", 0, 0, 1),
			}, opts)
			var boundsErr *BoundsError
			Expect(errors.As(err, &boundsErr)).To(BeTrue())
			Expect(boundsErr.Workload).To(Equal("doomed"))
			Expect(boundsErr.Field).To(Equal("max_load"))
			Expect(err.Error()).To(ContainSubstring("doomed"))
		})

		It("should reject a negative current_load", func() {
			_, err := Validate([]core.Workload{wl("neg", -0.5, 5, 1)}, opts)
			var boundsErr *BoundsError
			Expect(errors.As(err, &boundsErr)).To(BeTrue())
			Expect(boundsErr.Field).To(Equal("current_load"))
		})

		It("should reject current_load above max_load", func() {
			_, err := Validate([]core.Workload{wl("over", 10, 5, 1)}, opts)
			var boundsErr *BoundsError
			Expect(errors.As(err, &boundsErr)).To(BeTrue())
			Expect(boundsErr.Workload).To(Equal("over"))
			Expect(boundsErr.Reason).To(ContainSubstring("exceeds max_load"))
		})

		It("should reject a non-positive k_m", func() {
			_, err := Validate([]core.Workload{wl("flat", 1, 5, 0)}, opts)
			var boundsErr *BoundsError
			Expect(errors.As(err, &boundsErr)).To(BeTrue())
			Expect(boundsErr.Field).To(Equal("k_m"))
		})
	})

	Context("with valid workloads", func() {
		It("should pass the reference scenario", func() {
			diags, err := Validate([]core.Workload{
				wl("A", 1.5, 5.0, 1.0),
				wl("B", 2.2, 4.0, 0.5),
				wl("C", 0.8, 6.0, 2.0),
			}, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(diags).NotTo(BeNil())
		})

		It("should allow a zero current_load", func() {
			_, err := Validate([]core.Workload{wl("idle", 0, 5, 1)}, opts)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("dispersion diagnostic", func() {
		It("should be skipped below three workloads", func() {
			diags, err := Validate([]core.Workload{
				wl("a", 1, 5, 1),
				wl("b", 2, 5, 1),
			}, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(diags.DispersionChecked).To(BeFalse())
			Expect(diags.Warnings).To(BeEmpty())
		})

		It("should be skipped when all loads are zero", func() {
			diags, err := Validate([]core.Workload{
				wl("a", 0, 5, 1),
				wl("b", 0, 5, 1),
				wl("c", 0, 5, 1),
			}, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(diags.DispersionChecked).To(BeFalse())
		})

		It("should stay quiet for Poisson-plausible loads", func() {
			diags, err := Validate([]core.Workload{
				wl("a", 2, 10, 1),
				wl("b", 3, 10, 1),
				wl("c", 2, 10, 1),
				wl("d", 4, 10, 1),
				wl("e", 3, 10, 1),
			}, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(diags.DispersionChecked).To(BeTrue())
			Expect(diags.Warnings).To(BeEmpty())
		})

		It("should warn on strong over-dispersion", func() {
			diags, err := Validate([]core.Workload{
				wl("a", 0.1, 30, 1),
				wl("b", 0.1, 30, 1),
				wl("c", 20, 30, 1),
				wl("d", 0.1, 30, 1),
				wl("e", 0.1, 30, 1),
			}, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(diags.Warnings).To(HaveLen(1))
			Expect(diags.Warnings[0]).To(ContainSubstring("over-dispersed"))
		})

		It("should warn on strong under-dispersion", func() {
			diags, err := Validate([]core.Workload{
				wl("a", 5, 10, 1),
				wl("b", 5, 10, 1),
				wl("c", 5, 10, 1),
				wl("d", 5, 10, 1),
			}, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(diags.Warnings).To(HaveLen(1))
			Expect(diags.Warnings[0]).To(ContainSubstring("under-dispersed"))
		})

		It("should produce monotonically smaller p-values for greater deviation", func() {
			base := []core.Workload{
				wl("a", 3, 100, 1),
				wl("b", 3, 100, 1),
				wl("c", 3, 100, 1),
				wl("d", 3, 100, 1),
			}
			var prevP = math.Inf(1)
			for _, spread := range []float64{5, 8, 20, 60} {
				ws := make([]core.Workload, len(base))
				copy(ws, base)
				ws[0].CurrentLoad += spread
				diags, err := Validate(ws, opts)
				Expect(err).NotTo(HaveOccurred())
				Expect(diags.DispersionChecked).To(BeTrue())
				Expect(diags.DispersionP).To(BeNumerically("<", prevP))
				prevP = diags.DispersionP
			}
		})

		It("should be disabled by a zero significance", func() {
			diags, err := Validate([]core.Workload{
				wl("a", 5, 10, 1),
				wl("b", 5, 10, 1),
				wl("c", 5, 10, 1),
			}, Options{DispersionSignificance: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(diags.DispersionChecked).To(BeFalse())
			Expect(diags.Warnings).To(BeEmpty())
		})
	})
})
