package observability

import "github.com/signalsfoundry/skytarget/catalog"

// Watch subscribes the collector to a catalog so the target gauge and
// change counters track its contents. The returned function detaches the
// subscription.
func (c *CatalogCollector) Watch(cat *catalog.Catalog) func() {
	c.SetTargetCount(len(cat.ListTargets()))

	return cat.Subscribe(func(ev catalog.Event) {
		switch ev.Type {
		case catalog.EventTargetCreated:
			c.RecordChange("created")
		case catalog.EventTargetUpdated:
			c.RecordChange("updated")
		case catalog.EventTargetDeleted:
			c.RecordChange("deleted")
		}
		c.SetTargetCount(len(cat.ListTargets()))
	})
}
