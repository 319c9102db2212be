package ai

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	debuglog "github.com/noteweaver/noteweaver/internal/log"
)

// VendorsManager keeps the known vendors and tracks which ones are configured.
type VendorsManager struct {
	Vendors       []Vendor
	VendorsByName map[string]Vendor
	Configured    map[string]Vendor
}

func NewVendorsManager() *VendorsManager {
	return &VendorsManager{
		VendorsByName: map[string]Vendor{},
		Configured:    map[string]Vendor{},
	}
}

func (o *VendorsManager) AddVendors(vendors ...Vendor) {
	for _, vendor := range vendors {
		o.Vendors = append(o.Vendors, vendor)
		o.VendorsByName[strings.ToLower(vendor.GetName())] = vendor
	}
}

// Configure configures every vendor from the environment. Vendors that fail stay unconfigured.
func (o *VendorsManager) Configure() {
	for _, vendor := range o.Vendors {
		if err := vendor.Configure(); err != nil {
			debuglog.Debug(debuglog.Detailed, "vendor %s not configured: %v", vendor.GetName(), err)
			continue
		}
		o.Configured[strings.ToLower(vendor.GetName())] = vendor
	}
}

// FindByName looks up a vendor by case-insensitive name or by its schema provider key, e.g. "lmstudio".
func (o *VendorsManager) FindByName(name string) Vendor {
	name = strings.ToLower(name)
	if vendor, ok := o.VendorsByName[name]; ok {
		return vendor
	}
	for _, vendor := range o.Vendors {
		if vendor.SchemaProvider() == name {
			return vendor
		}
	}
	return nil
}

// Get returns the configured vendor called name.
func (o *VendorsManager) Get(name string) (Vendor, error) {
	vendor := o.FindByName(name)
	if vendor == nil {
		return nil, fmt.Errorf("unknown vendor %s", name)
	}
	key := strings.ToLower(vendor.GetName())
	if _, ok := o.Configured[key]; !ok {
		if err := vendor.Configure(); err != nil {
			return nil, fmt.Errorf("vendor %s is not configured: %w", vendor.GetName(), err)
		}
		o.Configured[key] = vendor
	}
	return vendor, nil
}

// Names returns all vendor names sorted alphabetically.
func (o *VendorsManager) Names() []string {
	names := make([]string, 0, len(o.Vendors))
	for _, vendor := range o.Vendors {
		names = append(names, vendor.GetName())
	}
	sort.Strings(names)
	return names
}

// GetModels lists the models of every configured vendor concurrently, keyed by vendor name.
func (o *VendorsManager) GetModels(ctx context.Context) map[string][]string {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		ret = map[string][]string{}
	)
	for _, vendor := range o.Configured {
		wg.Add(1)
		go func(v Vendor) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			models, err := v.ListModels()
			if err != nil {
				debuglog.Warn("listing models for %s failed: %v", v.GetName(), err)
				return
			}
			sort.Strings(models)
			mu.Lock()
			ret[v.GetName()] = models
			mu.Unlock()
		}(vendor)
	}
	wg.Wait()
	return ret
}
