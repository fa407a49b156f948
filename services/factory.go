package services

import (
	"sync"

	"github.com/effective-security/masamcp/masaapi"
	"github.com/effective-security/xlog"
)

// Factory creates the services on first use over the API
type Factory struct {
	lock      sync.Mutex
	api       masaapi.API
	twitter   Twitter
	web       Web
	analytics Analytics
}

// NewFactory returns a new Factory
func NewFactory(api masaapi.API) *Factory {
	logger.KV(xlog.DEBUG, "status", "factory_created")
	return &Factory{api: api}
}

// API returns the API used by the services
func (f *Factory) API() masaapi.API {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.api
}

// SetAPI replaces the API, the services are created again on next use
func (f *Factory) SetAPI(api masaapi.API) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.api = api
	f.twitter = nil
	f.web = nil
	f.analytics = nil
	logger.KV(xlog.DEBUG, "status", "api_replaced")
}

// Twitter returns the Twitter service
func (f *Factory) Twitter() Twitter {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.twitter == nil {
		f.twitter = NewTwitterService(f.api)
		logger.KV(xlog.DEBUG, "status", "service_created", "service", TwitterServiceName)
	}
	return f.twitter
}

// Web returns the Web service
func (f *Factory) Web() Web {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.web == nil {
		f.web = NewWebService(f.api)
		logger.KV(xlog.DEBUG, "status", "service_created", "service", WebServiceName)
	}
	return f.web
}

// Analytics returns the Analytics service
func (f *Factory) Analytics() Analytics {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.analytics == nil {
		f.analytics = NewAnalyticsService(f.api)
		logger.KV(xlog.DEBUG, "status", "service_created", "service", AnalyticsServiceName)
	}
	return f.analytics
}
