// Package server hosts the Fiber HTTP service that replaces the CMS admin
// glue: manual purge triggers, content-event webhooks, and a status endpoint.
// It owns the request-ID and token middlewares and the PurgeService that
// turns a trigger into purge.Request executions. Routes in the routes
// subpackage only translate HTTP into PurgeService calls, so keep exports
// narrow and accept explicit dependencies.
package server
