package handler

import (
	"context"

	"movierentals/codec"
	"movierentals/message"
)

func addClientHandlers(t *table, clients ClientService) {
	t.add(message.OpGetAllClients, ClientsNotFound, func(ctx context.Context, _ string) (string, error) {
		all, err := clients.All(ctx)
		if err != nil {
			return "", err
		}
		return codec.FormatClients(all), nil
	})

	t.add(message.OpAddClient, ClientNotAdded, func(ctx context.Context, payload string) (string, error) {
		c, err := codec.ParseNewClient(payload)
		if err != nil {
			return "", err
		}
		if c, err = clients.Add(ctx, c); err != nil {
			return "", err
		}
		return codec.FormatClient(c), nil
	})

	t.add(message.OpGetClientByID, ClientNotFound, func(ctx context.Context, payload string) (string, error) {
		id, err := codec.ParseID(payload)
		if err != nil {
			return "", err
		}
		c, err := clients.Get(ctx, id)
		if err != nil {
			return "", err
		}
		return codec.FormatClient(c), nil
	})

	t.add(message.OpUpdateClient, ClientNotUpdated, func(ctx context.Context, payload string) (string, error) {
		c, err := codec.ParseClient(payload)
		if err != nil {
			return "", err
		}
		if c, err = clients.Update(ctx, c); err != nil {
			return "", err
		}
		return codec.FormatClient(c), nil
	})

	t.add(message.OpDeleteClientByID, ClientNotDeleted, func(ctx context.Context, payload string) (string, error) {
		id, err := codec.ParseID(payload)
		if err != nil {
			return "", err
		}
		c, err := clients.Delete(ctx, id)
		if err != nil {
			return "", err
		}
		return codec.FormatClient(c), nil
	})

	t.add(message.OpFilterClientsByKeyword, ClientNameNoMatch, func(ctx context.Context, keyword string) (string, error) {
		matched, err := clients.Filter(ctx, keyword)
		if err != nil {
			return "", err
		}
		return codec.FormatClients(matched), nil
	})
}
